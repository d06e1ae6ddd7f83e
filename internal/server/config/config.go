// Package config handles configuration for the development API server,
// including defaults and command-line flags.
package config

import "time"

// Config holds runtime settings for the development admin API server.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - AllowedOrigins: comma separated CORS origins, "*" for any.
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty keeps everything in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - AdminUsername / AdminPassword: the account seeded at start-up.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     avatar object storage; an empty bucket keeps avatars in memory.
type Config struct {
	Addr                         string
	AllowedOrigins               string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	AdminUsername                string
	AdminPassword                string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
	S3AccessKey                  string
	S3SecretKey                  string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.AllowedOrigins = "*"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.AdminUsername = "admin"
	c.AdminPassword = "admin"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from command-line flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
