// Package config resolves settings from defaults, a config file, NFLMETRICS_*
// environment variables and command-line flags, and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pable/go-nfl-metrics/internal/aggregator"
	"github.com/pable/go-nfl-metrics/internal/storage"
)

// DefaultModel is the Anthropic model used for insights.
const DefaultModel = "claude-haiku-4-5-20251001"

// Config is the resolved settings for one invocation.
type Config struct {
	DB      string `mapstructure:"db" validate:"required_if=Backend sqlite"`
	Backend string `mapstructure:"backend" validate:"oneof=sqlite postgres postgresql pgx mysql"`
	DSN     string `mapstructure:"dsn" validate:"required_unless=Backend sqlite"`

	Limit        int `mapstructure:"limit" validate:"min=1,max=200"`
	MinQBPlays   int `mapstructure:"min-qb-plays" validate:"min=0"`
	MinRBRushes  int `mapstructure:"min-rb-rushes" validate:"min=0"`
	MinWRTargets int `mapstructure:"min-wr-targets" validate:"min=0"`
	MinTETargets int `mapstructure:"min-te-targets" validate:"min=0"`

	LogLevel  string `mapstructure:"log-level" validate:"oneof=debug info warn warning error"`
	LogFormat string `mapstructure:"log-format" validate:"oneof=text json"`

	Model  string `mapstructure:"model" validate:"required"`
	APIKey string `mapstructure:"api-key"`
}

// SetDefaults registers defaults and the file/env lookup on v. configFile
// overrides the search for .nflmetrics.yaml in the working and home directories.
func SetDefaults(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".nflmetrics")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("NFLMETRICS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	th := aggregator.DefaultThresholds()
	v.SetDefault("db", DefaultDBPath())
	v.SetDefault("backend", string(storage.SQLite))
	v.SetDefault("dsn", "")
	v.SetDefault("limit", aggregator.DefaultLimit)
	v.SetDefault("min-qb-plays", th.QBPlays)
	v.SetDefault("min-rb-rushes", th.RBRushes)
	v.SetDefault("min-wr-targets", th.WRTargets)
	v.SetDefault("min-te-targets", th.TETargets)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
	v.SetDefault("model", DefaultModel)
	v.SetDefault("api-key", "")
}

// DefaultDBPath is ~/.nflmetrics/metrics.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "metrics.db"
	}
	return filepath.Join(home, ".nflmetrics", "metrics.db")
}

// Load reads the config file if present, unmarshals and validates.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Backend = strings.ToLower(cfg.Backend)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// Thresholds returns the cohort minimums.
func (c *Config) Thresholds() aggregator.Thresholds {
	return aggregator.Thresholds{
		QBPlays:   c.MinQBPlays,
		RBRushes:  c.MinRBRushes,
		WRTargets: c.MinWRTargets,
		TETargets: c.MinTETargets,
	}
}

// Pipeline returns an aggregation pipeline configured from c.
func (c *Config) Pipeline() *aggregator.Pipeline {
	return &aggregator.Pipeline{Thresholds: c.Thresholds(), Limit: c.Limit}
}

// OpenStore connects to the configured backend.
func (c *Config) OpenStore() (*storage.DB, error) {
	backend, err := storage.ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}
	if backend == storage.SQLite {
		if dir := filepath.Dir(c.DB); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		return storage.Open(c.DB)
	}
	return storage.OpenBackend(backend, c.DSN)
}
