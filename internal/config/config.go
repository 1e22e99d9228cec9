// Package config loads runtime configuration from the process environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable the pipeline needs. A single value is built at
// startup and passed down explicitly; nothing reads the environment after Load.
type Config struct {
	// APIKey authenticates against the Gemini API. When empty, classification
	// is disabled and every batch yields an empty result.
	APIKey string `envconfig:"GOOGLE_API_KEY"`

	// Model is the Gemini model identifier used for classification.
	Model string `envconfig:"MODEL" default:"gemini-2.5-flash"`

	// RPMDelay is slept after every successful classification call to stay
	// under the service's requests-per-minute budget.
	RPMDelay time.Duration `envconfig:"RPM_DELAY" default:"1050ms"`

	// MaxRetries bounds retries of transient failures per batch
	// (MaxRetries+1 total attempts).
	MaxRetries int `envconfig:"MAX_RETRIES" default:"3"`

	// BackoffBase scales the exponential retry wait: attempt n waits
	// BackoffBase*2^n plus a uniform jitter in [0, BackoffBase).
	BackoffBase time.Duration `envconfig:"BACKOFF_BASE" default:"1s"`

	// BatchSize is the number of transactions per classification call.
	BatchSize int `envconfig:"BATCH_SIZE" default:"20"`

	// DataDir holds the per-source TSV exports.
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// LogDir receives the integrated and classified TSV files.
	LogDir string `envconfig:"LOG_DIR" default:"log"`

	// TaxonomyPath optionally overrides the embedded category taxonomy.
	TaxonomyPath string `envconfig:"TAXONOMY_PATH"`

	// LogLevel filters log output (debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file, then builds the Config from the
// environment. A missing .env is not an error; malformed values are.
func Load() (Config, error) {
	// Ignore a missing .env; explicit environment still applies.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("ledgersort", &cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("config.Validate: batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config.Validate: max retries must be non-negative, got %d", c.MaxRetries)
	}
	if c.RPMDelay < 0 {
		return fmt.Errorf("config.Validate: rpm delay must be non-negative, got %s", c.RPMDelay)
	}
	if c.BackoffBase <= 0 {
		return fmt.Errorf("config.Validate: backoff base must be positive, got %s", c.BackoffBase)
	}
	return nil
}

// ClassificationEnabled reports whether an API key is configured.
func (c Config) ClassificationEnabled() bool {
	return c.APIKey != ""
}
