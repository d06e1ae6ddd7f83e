package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/flagx"
	"gopkg.in/yaml.v3"
)

// Duration decodes "10s" style strings or integer seconds from JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch x := v.(type) {
	case float64:
		*d = Duration(time.Duration(x * float64(time.Second)))
	case int:
		*d = Duration(time.Duration(x) * time.Second)
	case string:
		p, err := parseDuration(x)
		if err != nil {
			return err
		}
		*d = Duration(p)
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// fileConfig is the on-disk shape; empty fields leave the current value.
type fileConfig struct {
	BaseURL    string    `json:"base_url" yaml:"base_url"`
	Timeout    *Duration `json:"timeout" yaml:"timeout"`
	StatePath  string    `json:"state_path" yaml:"state_path"`
	Passphrase string    `json:"state_passphrase" yaml:"state_passphrase"`
	LogLevel   string    `json:"log_level" yaml:"log_level"`
	LogFormat  string    `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config in args. Files
// ending in .yaml or .yml are YAML, anything else JSON. No flag, no change.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Timeout != nil {
		cfg.Timeout = time.Duration(*fc.Timeout)
	}
	if fc.StatePath != "" {
		cfg.StatePath = fc.StatePath
	}
	if fc.Passphrase != "" {
		cfg.Passphrase = fc.Passphrase
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
}
