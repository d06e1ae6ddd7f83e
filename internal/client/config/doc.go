// Package config loads runtime configuration for the admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. ".yaml"/".yml" files
//     are read as YAML, anything else as JSON.
//  3. A ".env" file in the working directory, then the process environment
//     (ADMIN_API_BASE_URL, ADMIN_API_TIMEOUT, ADMIN_STATE_PATH,
//     ADMIN_STATE_PASSPHRASE, ADMIN_LOG_LEVEL, ADMIN_LOG_FORMAT).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-s string   session state database path
//	-l string   log level
//
// # File schema
//
// Durations may be strings like "15s" or integer seconds:
//
//	base_url: https://admin.example.com/api
//	timeout: 15s
//	state_path: /var/lib/admin-cli/state.db
//	log_level: debug
//	log_format: json
//
// The passphrase is best kept out of files and flags; set
// ADMIN_STATE_PASSPHRASE instead.
package config
