package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/questionbank/internal/model"
)

const configHierarchy = `Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (QUESTIONBANK_*, also read from ./.env)
  3. Config file (~/.questionbank/config.yaml)
  4. Defaults
`

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Questionbank configuration",
	Long:  "Manage Questionbank configuration files and settings.\n\n" + configHierarchy,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after defaults, config file, env vars and flags are merged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (using defaults)\n\n")
		}

		out := cmd.OutOrStdout()
		if err := writeConfig(out, cfg); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprint(out, configHierarchy)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.questionbank/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		dir, err := configDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}
		configPath := filepath.Join(dir, "config.yaml")

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'questionbank config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		if _, err := fmt.Fprintf(f, "# Questionbank Configuration File\n#\n# %s\n\n", commentLines(configHierarchy)); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		if err := writeConfig(f, model.DefaultConfig()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Created default configuration: %s\n", configPath)
		fmt.Fprintf(out, "\nTo view the configuration:\n  questionbank config show\n")
		fmt.Fprintf(out, "\nTo customize, edit the file with your preferred editor:\n  $EDITOR %s\n", configPath)
		return nil
	},
}

// writeConfig marshals cfg as YAML
func writeConfig(w io.Writer, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}

func commentLines(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n# ")
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
