package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ppiankov/questionbank/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is overridden at build time with -ldflags "-X .../cli.Version=..."
var Version = "v0.1.0"

const envPrefix = "QUESTIONBANK"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "questionbank",
	Short: "Questionbank - browse quiz questions and annotate them with related topics",
	Long: `Questionbank loads a CSV of quiz questions, cleans LaTeX markup out of the
text and keeps the parsed list in a local cache so later runs start without
a fetch.

Questions are browsed 15 per page. Each question can be annotated with
related topics, which are posted to the configured save endpoint.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "questionbank %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.questionbank/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and ENV variables
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error reading .env: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".questionbank"), nil
}

// bindEnv maps QUESTIONBANK_SOURCE_URL style variables onto nested keys
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("app.env", cfg.App.Env)
	v.SetDefault("source.url", cfg.Source.URL)
	v.SetDefault("source.path", cfg.Source.Path)
	v.SetDefault("submit.endpoint", cfg.Submit.Endpoint)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.key", cfg.Cache.Key)
	v.SetDefault("http.timeout", cfg.HTTP.Timeout)
	v.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	v.SetDefault("http.max_body_bytes", cfg.HTTP.MaxBodyBytes)
	v.SetDefault("http.fetch_attempts", cfg.HTTP.FetchAttempts)
	v.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	v.SetDefault("rate_limiting.requests_per_second", cfg.RateLimiting.RequestsPerSecond)
	v.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("server.addr", cfg.Server.Addr)
}

// decodeConfig layers v (file, env, flags) over the built-in defaults
func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	setDefaults(v, cfg)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if cfg.Cache.Key == "" {
		cfg.Cache.Key = model.DefaultCacheKey
	}
	return cfg, nil
}

func loadConfig() (*model.Config, error) {
	return decodeConfig(viper.GetViper())
}
