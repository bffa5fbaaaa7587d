package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds the complete questionbank configuration
type Config struct {
	App          AppConfig         `yaml:"app" mapstructure:"app"`
	Source       SourceConfig      `yaml:"source" mapstructure:"source"`
	Submit       SubmitConfig      `yaml:"submit" mapstructure:"submit"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
}

// AppConfig controls process-wide behavior
type AppConfig struct {
	Env string `yaml:"env" mapstructure:"env"` // local, production
}

// SourceConfig locates the CSV resource
type SourceConfig struct {
	URL  string `yaml:"url" mapstructure:"url"`   // Where the CSV is fetched from
	Path string `yaml:"path" mapstructure:"path"` // Optional local CSV served by `serve` at /questions.csv
}

// SubmitConfig locates the annotation backend
type SubmitConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}

// CacheConfig controls the durable question-list cache
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Key     string `yaml:"key" mapstructure:"key"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"` // Larger CSV bodies fail the load
	FetchAttempts int           `yaml:"fetch_attempts" mapstructure:"fetch_attempts"` // 1 disables retry
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// RateLimitConfig controls per-host request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ConcurrencyConfig controls the normalization worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// ServerConfig controls the `serve` command
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultCacheKey is the single fixed key the parsed question list is stored under
const DefaultCacheKey = "questions"

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cacheDir := ".questionbank/cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".questionbank", "cache")
	}

	return &Config{
		App: AppConfig{
			Env: "local",
		},
		Source: SourceConfig{
			URL: "http://localhost:8080/questions.csv",
		},
		Submit: SubmitConfig{
			Endpoint: "http://localhost:8000/save",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     cacheDir,
			Key:     DefaultCacheKey,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "QuestionBank/0.1 (+https://github.com/ppiankov/questionbank)",
			MaxBodyBytes:  32 << 20,
			FetchAttempts: 1,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
