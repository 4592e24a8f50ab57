// ABOUTME: Configuration loading and parsing for orderdesk
// ABOUTME: TOML with environment variable expansion, duration parsing, and validation

package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/workee/orderdesk/internal/catalog"
	"github.com/workee/orderdesk/internal/session"
)

// Config is the complete orderdesk configuration.
type Config struct {
	Matrix   MatrixConfig   `toml:"matrix"`
	Bridge   BridgeConfig   `toml:"bridge"`
	Operator OperatorConfig `toml:"operator"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Ledger   LedgerConfig   `toml:"ledger"`
	Session  SessionConfig  `toml:"session"`
	Logging  LoggingConfig  `toml:"logging"`
}

// MatrixConfig holds the channel credential.
type MatrixConfig struct {
	Homeserver  string `toml:"homeserver"`
	UserID      string `toml:"user_id"`
	AccessToken string `toml:"access_token"`
}

// BridgeConfig holds channel adapter behavior.
type BridgeConfig struct {
	AllowedRooms    []string `toml:"allowed_rooms"`
	TypingIndicator bool     `toml:"typing_indicator"`
}

// OperatorConfig identifies where order notifications go.
type OperatorConfig struct {
	Room string `toml:"room"`
}

// CatalogConfig points at the product catalog source.
type CatalogConfig struct {
	Path    string        `toml:"path"`
	Refresh time.Duration `toml:"-"`

	// Raw string value for TOML decoding
	RefreshRaw string `toml:"refresh"`
}

// LedgerConfig holds the order ledger location.
type LedgerConfig struct {
	Path string `toml:"path"`
}

// SessionConfig holds conversation session tuning.
type SessionConfig struct {
	Timeout time.Duration `toml:"-"`

	// Raw string value for TOML decoding
	TimeoutRaw string `toml:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Load reads config from the given path, expanding ${VAR} environment
// variables, parsing duration strings, and validating required fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.parseDurations(); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// parseDurations converts the raw duration strings into time.Duration values.
func (c *Config) parseDurations() error {
	var err error

	if c.Session.TimeoutRaw != "" {
		c.Session.Timeout, err = time.ParseDuration(c.Session.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing session.timeout %q: %w", c.Session.TimeoutRaw, err)
		}
	}

	if c.Catalog.RefreshRaw != "" {
		c.Catalog.Refresh, err = time.ParseDuration(c.Catalog.RefreshRaw)
		if err != nil {
			return fmt.Errorf("parsing catalog.refresh %q: %w", c.Catalog.RefreshRaw, err)
		}
	}

	return nil
}

// applyDefaults fills in values that have sensible fallbacks.
func (c *Config) applyDefaults() {
	if c.Session.Timeout == 0 {
		c.Session.Timeout = session.DefaultTTL
	}
	if c.Catalog.Refresh == 0 {
		c.Catalog.Refresh = catalog.DefaultRefresh
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks that required config fields are present and valid.
func (c *Config) Validate() error {
	if c.Matrix.Homeserver == "" {
		return fmt.Errorf("matrix.homeserver is required")
	}
	if _, err := url.Parse(c.Matrix.Homeserver); err != nil {
		return fmt.Errorf("matrix.homeserver is not a valid URL: %w", err)
	}
	if c.Matrix.UserID == "" {
		return fmt.Errorf("matrix.user_id is required")
	}
	if c.Matrix.AccessToken == "" {
		return fmt.Errorf("matrix.access_token is required")
	}
	if c.Operator.Room == "" {
		return fmt.Errorf("operator.room is required")
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path is required")
	}
	if c.Session.Timeout < 0 {
		return fmt.Errorf("session.timeout must not be negative")
	}
	return nil
}
