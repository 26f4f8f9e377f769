// Package config loads runtime configuration for SafeSpace.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-k string   database driver: sqlite or postgres
//	-d string   database DSN (file path for sqlite)
//	-s string   secret of the seeded admin account
//	-l int      number of counselor contacts shown to a user
//	-p bool     accept legacy plaintext secrets
//	-v string   log level
//	-i int      pooled connection max idle time (seconds)
//
// # JSON schema
//
// Only keys present in the file are applied. Durations use timex.Duration,
// so values can be strings like "90s" or integer nanoseconds:
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "safespace.db",
//	  "default_admin_secret": "1234",
//	  "counselor_contact_limit": 20,
//	  "legacy_plaintext_secrets": false,
//	  "log_level": "warn",
//	  "conn_max_idle_time": "5m"
//	}
package config
