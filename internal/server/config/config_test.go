package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 24*time.Hour, c.RefreshTokenValidityDuration)
	assert.Equal(t, "admin", c.AdminUsername)
	assert.Empty(t, c.DatabaseDSN)
}

func TestLoadConfig_Flags(t *testing.T) {
	c, err := LoadConfig([]string{"-a", ":9999", "-d", "postgres://localhost/admin", "-t", "2", "-r", "10", "-u", "root", "-b", "avatars", "-e", "http://127.0.0.1:9000/", "-x", "ignored"})
	require.NoError(t, err)

	want := &Config{
		Addr:                         ":9999",
		AllowedOrigins:               "*",
		DatabaseDSN:                  "postgres://localhost/admin",
		SecretKey:                    "secretKey",
		AccessTokenValidityDuration:  2 * time.Minute,
		RefreshTokenValidityDuration: 10 * time.Minute,
		AdminUsername:                "root",
		AdminPassword:                "admin",
		S3Bucket:                     "avatars",
		S3Region:                     "us-east-1",
		S3BaseEndpoint:               "http://127.0.0.1:9000/",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_BadFlag(t *testing.T) {
	_, err := LoadConfig([]string{"-t", "abc"})
	require.Error(t, err)
}
