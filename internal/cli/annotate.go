package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/questionbank/internal/view"
)

var (
	annotateTopics   string
	annotateQuestion string
	annotateSubject  string
	annotateTimeout  time.Duration
)

// annotateCmd represents the annotate command
var annotateCmd = &cobra.Command{
	Use:   "annotate <id>",
	Short: "Save related topics for a question",
	Long: `Annotate posts related topics for one question to submit.endpoint.
The question and subject default to the loaded values and can be edited
with --question and --subject.

Example:
  questionbank annotate 12 --topics "limits, continuity"
  questionbank annotate 12 --topics "vectors" --subject "Linear Algebra"`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().StringVarP(&annotateTopics, "topics", "t", "", "related topics (required)")
	annotateCmd.Flags().StringVar(&annotateQuestion, "question", "", "edited question text")
	annotateCmd.Flags().StringVar(&annotateSubject, "subject", "", "edited subject")
	annotateCmd.Flags().DurationVar(&annotateTimeout, "timeout", time.Minute, "load and submit timeout")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid question id %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), annotateTimeout)
	defer cancel()

	if _, err := a.questions.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", view.LoadErrorMessage(err), err)
	}

	q, ok := a.questions.Find(id)
	if !ok {
		return fmt.Errorf("%s: #%d", view.MsgQuestionNotFound, id)
	}

	form := view.NewFormView(&q, a.submitter, a.logger)
	if cmd.Flags().Changed("question") {
		form.Question = annotateQuestion
	}
	if cmd.Flags().Changed("subject") {
		form.Subject = annotateSubject
	}
	form.RelatedTopics = annotateTopics

	out, err := form.Submit(ctx)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", out.Notice.Title, out.Notice.Description, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s\n", out.Notice.Title, out.Notice.Description)
	return nil
}
