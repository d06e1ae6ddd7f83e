package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the admin CLI.
//
// Fields:
//   - BaseURL: API root every request path is joined onto.
//   - Timeout: bound on one request/response exchange.
//   - StatePath: SQLite file holding the persisted session.
//   - Passphrase: optional key sealing the persisted session at rest.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	StatePath  string
	Passphrase string
	LogLevel   string
	LogFormat  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080/api"
	c.Timeout = 10 * time.Second
	c.StatePath = "admin-state.db"
	c.Passphrase = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config from args (without the program name):
// defaults, then the config file named by -c/-config, then .env and the
// process environment, then flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg, DotEnvFile); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// parseDuration accepts a Go duration ("1m30s") or a plain number of
// seconds.
func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	var secs int64
	if _, err := fmt.Sscan(s, &secs); err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return time.Duration(secs) * time.Second, nil
}
