// Package config handles loading and validating OrganizeIT configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} placeholders in config values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ErrConfigFileNotFound is returned by Load when the specified config file does not exist.
var ErrConfigFileNotFound = errors.New("config file not found")

// Config is the top-level OrganizeIT configuration.
type Config struct {
	Listen        string               `yaml:"listen"`
	LogLevel      string               `yaml:"log_level"`
	LogFormat     string               `yaml:"log_format"`
	Store         StoreConfig          `yaml:"store"`
	Metrics       MetricsConfig        `yaml:"metrics"`
	Retention     RetentionConfig      `yaml:"retention"`
	Warmup        WarmupConfig         `yaml:"warmup"`
	Notifications []NotificationConfig `yaml:"notifications"`
	Demo          DemoConfig           `yaml:"demo"`
}

// StoreConfig selects and locates the key-value backend.
type StoreConfig struct {
	Driver     string `yaml:"driver"` // memory, sqlite, badger, postgres
	Path       string `yaml:"path"`   // sqlite file or badger directory
	DSN        string `yaml:"dsn"`    // postgres only
	SyncWrites bool   `yaml:"sync_writes"`
}

// MetricsConfig tunes the dashboard snapshot cache.
type MetricsConfig struct {
	DashboardTTL Duration `yaml:"dashboard_ttl"`
}

// RetentionConfig controls pruning of timestamped archive keys.
type RetentionConfig struct {
	Archives Duration `yaml:"archives"`
	Interval Duration `yaml:"interval"`
}

// WarmupConfig controls the startup read of every seeded resource.
type WarmupConfig struct {
	Enabled     bool     `yaml:"enabled"`
	Timeout     Duration `yaml:"timeout"`
	Concurrency int      `yaml:"concurrency"`
}

// NotificationConfig describes a notification target.
type NotificationConfig struct {
	Type    string            `yaml:"type"` // "ntfy" or "webhook"
	URL     string            `yaml:"url"`
	Topic   string            `yaml:"topic,omitempty"`   // ntfy only
	Method  string            `yaml:"method,omitempty"`  // webhook only
	Headers map[string]string `yaml:"headers,omitempty"` // webhook only
}

// DemoConfig is the local demo account. An empty PasswordHash means the
// built-in demo password.
type DemoConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
}

// Duration wraps time.Duration with YAML string parsing support.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Load reads configuration from a YAML file. If no path is given, defaults
// and environment variables are used. If a path is given and the file does
// not exist, ErrConfigFileNotFound is returned.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(expandEnvVars(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "sqlite", "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for %s", c.Store.Driver)
		}
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("store.driver must be one of: memory, sqlite, badger, postgres")
	}
	for i, n := range c.Notifications {
		switch n.Type {
		case "ntfy":
			if n.URL == "" {
				return fmt.Errorf("notifications[%d]: url is required for ntfy", i)
			}
			if n.Topic == "" {
				return fmt.Errorf("notifications[%d]: topic is required for ntfy", i)
			}
		case "webhook":
			if n.URL == "" {
				return fmt.Errorf("notifications[%d]: url is required for webhook", i)
			}
		default:
			return fmt.Errorf("notifications[%d]: unknown type %q (expected ntfy or webhook)", i, n.Type)
		}
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.LogFormat] {
		return fmt.Errorf("log_format must be one of: text, json")
	}
	if c.Metrics.DashboardTTL.Duration <= 0 {
		return fmt.Errorf("metrics.dashboard_ttl must be > 0")
	}
	if c.Retention.Archives.Duration <= 0 {
		return fmt.Errorf("retention.archives must be > 0")
	}
	if c.Retention.Interval.Duration <= 0 {
		return fmt.Errorf("retention.interval must be > 0")
	}
	if c.Warmup.Enabled {
		if c.Warmup.Timeout.Duration <= 0 {
			return fmt.Errorf("warmup.timeout must be > 0")
		}
		if c.Warmup.Concurrency < 1 {
			return fmt.Errorf("warmup.concurrency must be >= 1")
		}
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Listen:    ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		Store: StoreConfig{
			Driver:     "sqlite",
			Path:       "/data/organizeit.db",
			SyncWrites: true,
		},
		Metrics: MetricsConfig{DashboardTTL: Duration{60 * time.Second}},
		Retention: RetentionConfig{
			Archives: Duration{7 * 24 * time.Hour},
			Interval: Duration{time.Hour},
		},
		Warmup: WarmupConfig{
			Enabled:     true,
			Timeout:     Duration{3 * time.Second},
			Concurrency: 4,
		},
		Demo: DemoConfig{Email: "demo@organizeit.com"},
	}
}

// expandEnvVars replaces ${VAR_NAME} placeholders in raw YAML with the
// corresponding environment variable values. Unset variables are replaced
// with an empty string, which will then fail validation with a clear error.
func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		key := string(match[2 : len(match)-1]) // strip ${ and }
		return []byte(os.Getenv(key))
	})
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ORGANIZEIT_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("ORGANIZEIT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ORGANIZEIT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("ORGANIZEIT_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("ORGANIZEIT_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("ORGANIZEIT_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("ORGANIZEIT_DEMO_EMAIL"); v != "" {
		cfg.Demo.Email = v
	}
	if v := os.Getenv("ORGANIZEIT_DEMO_PASSWORD_HASH"); v != "" {
		cfg.Demo.PasswordHash = v
	}
	if v := os.Getenv("ORGANIZEIT_WARMUP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Warmup.Enabled = b
		}
	}

	// Single ntfy target from env vars (only if no YAML notifications configured).
	if len(cfg.Notifications) == 0 {
		if ntfyURL := os.Getenv("ORGANIZEIT_NTFY_URL"); ntfyURL != "" {
			topic := os.Getenv("ORGANIZEIT_NTFY_TOPIC")
			if topic == "" {
				topic = "organizeit-alerts"
			}
			cfg.Notifications = append(cfg.Notifications, NotificationConfig{
				Type:  "ntfy",
				URL:   ntfyURL,
				Topic: topic,
			})
		}
	}
}
