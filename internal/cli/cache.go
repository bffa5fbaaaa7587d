package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local question cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the cached question list so the next load fetches again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Cache.Enabled {
			fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled, nothing to clear")
			return nil
		}

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.questions.Invalidate(); err != nil {
			return fmt.Errorf("error clearing cache: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %q from %s\n", a.store.Key(), cfg.Cache.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
