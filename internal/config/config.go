// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/stockml/stockml/internal/core"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Refresher RefresherConfig `mapstructure:"refresher"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// StorageConfig selects the key-value backend the session and watchlist
// stores persist to.
type StorageConfig struct {
	Backend string   `mapstructure:"backend"` // "memory", "localfs", "sqlite" or "s3"
	Path    string   `mapstructure:"path"`    // base directory for localfs
	DSN     string   `mapstructure:"dsn"`     // database path for sqlite
	S3      S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// SimulatorConfig tunes the mock data generator. Seed zero means
// clock-seeded; latency zeroes disable the artificial delays.
type SimulatorConfig struct {
	Seed    int64         `mapstructure:"seed"`
	Latency LatencyConfig `mapstructure:"latency"`
}

type LatencyConfig struct {
	Search     time.Duration `mapstructure:"search"`
	Quote      time.Duration `mapstructure:"quote"`
	History    time.Duration `mapstructure:"history"`
	News       time.Duration `mapstructure:"news"`
	Movers     time.Duration `mapstructure:"movers"`
	Indices    time.Duration `mapstructure:"indices"`
	Prediction time.Duration `mapstructure:"prediction"`
	Auth       time.Duration `mapstructure:"auth"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// RefresherConfig holds the watchlist snapshot refresher settings.
type RefresherConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Backend: "memory",
			Path:    "data",
			DSN:     "data/stockml.db",
		},
		Simulator: SimulatorConfig{
			Latency: LatencyConfig{
				Search:     300 * time.Millisecond,
				Quote:      500 * time.Millisecond,
				History:    700 * time.Millisecond,
				News:       600 * time.Millisecond,
				Movers:     800 * time.Millisecond,
				Indices:    500 * time.Millisecond,
				Prediction: 1500 * time.Millisecond,
				Auth:       800 * time.Millisecond,
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Refresher: RefresherConfig{
			Enabled:  false,
			Schedule: "*/5 * * * *",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Storage.Backend {
	case "memory":
	case "localfs":
		if c.Storage.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage path required for localfs backend"))
		}
	case "sqlite":
		if c.Storage.DSN == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage dsn required for sqlite backend"))
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required for s3 backend"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}

	if c.Refresher.Enabled && c.Refresher.Schedule == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("refresher schedule required when enabled"))
	}

	return nil
}
