package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ppiankov/questionbank/internal/view"
)

var (
	listPage    int
	listTimeout time.Duration
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of questions",
	Long: `List loads the question list (from the cache when present) and prints
one page of 15 questions. Pages outside the valid range fall back to page 1.

Example:
  questionbank list
  questionbank list --page 3`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number (1-based)")
	listCmd.Flags().DurationVar(&listTimeout, "timeout", 2*time.Minute, "load timeout")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout)
	defer cancel()

	v := view.NewListView(a.questions, view.WithListLogger(a.logger))
	if err := v.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", v.State().Error, err)
	}

	if listPage != 1 && !v.SetPage(listPage) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Page %d is out of range, showing page 1\n", listPage)
	}

	writePage(cmd.OutOrStdout(), v.State(), message.NewPrinter(language.English))
	return nil
}

// writePage prints a list snapshot as plain text
func writePage(w io.Writer, st view.ListState, p *message.Printer) {
	p.Fprintf(w, "Browse through %d questions.\n\n", st.Total)

	for _, q := range st.Questions {
		fmt.Fprintf(w, "#%-5d [%s] %s\n", q.ID, q.Subject, q.Question)
	}

	if st.ShowPager {
		fmt.Fprintf(w, "\nPage %d of %d (%d-%d of %d)\n", st.Page, st.TotalPages, st.First, st.Last, st.Total)
	}
}
