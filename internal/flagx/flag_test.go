package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-a", "http://api.local", "-t", "5"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", "http://api.local"},
		},
		{
			name:         "equals form",
			args:         []string{"-a=http://api.local", "-t", "5"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a=http://api.local"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
		{
			name:         "flag without value at end",
			args:         []string{"-a"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-a", "-t", "5"},
			allowedFlags: []string{"-a", "-t"},
			want:         []string{"-a", "-t", "5"},
		},
		{
			name:         "equals value may start with dash",
			args:         []string{"-config=--odd.yaml"},
			allowedFlags: []string{"-config"},
			want:         []string{"-config=--odd.yaml"},
		},
		{
			name:         "repeated flag preserved in order",
			args:         []string{"-l", "debug", "-l", "warn"},
			allowedFlags: []string{"-l"},
			want:         []string{"-l", "debug", "-l", "warn"},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/etc/admin.yaml", ConfigFileFlag([]string{"-c", "/etc/admin.yaml"}))
	assert.Equal(t, "/etc/admin.json", ConfigFileFlag([]string{"-a", "x", "-config", "/etc/admin.json"}))
	assert.Equal(t, "b.json", ConfigFileFlag([]string{"-c", "a.json", "-config", "b.json"}))
	assert.Empty(t, ConfigFileFlag([]string{"-x", "1"}))
	assert.Empty(t, ConfigFileFlag(nil))
}
