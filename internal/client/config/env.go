package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFile is read, when present, before the environment is consulted.
// Variables already set in the process win over the file.
const DotEnvFile = ".env"

// Environment variables recognised by parseEnv.
const (
	EnvBaseURL    = "ADMIN_API_BASE_URL"
	EnvTimeout    = "ADMIN_API_TIMEOUT"
	EnvStatePath  = "ADMIN_STATE_PATH"
	EnvPassphrase = "ADMIN_STATE_PASSPHRASE"
	EnvLogLevel   = "ADMIN_LOG_LEVEL"
	EnvLogFormat  = "ADMIN_LOG_FORMAT"
)

func parseEnv(cfg *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if v, ok := os.LookupEnv(EnvBaseURL); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	if v, ok := os.LookupEnv(EnvStatePath); ok && v != "" {
		cfg.StatePath = v
	}
	if v, ok := os.LookupEnv(EnvPassphrase); ok {
		cfg.Passphrase = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	return nil
}
