package config

import "time"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings for SafeSpace.
//
// Fields:
//   - DatabaseDriver: "sqlite" (default, file database) or "postgres".
//   - DatabaseDSN: file path for SQLite, connection URL for PostgreSQL.
//   - DefaultAdminSecret: secret given to the seeded "admin" account.
//   - CounselorContactLimit: how many counselor contacts a user is shown.
//   - LegacyPlaintextSecrets: accept stored secrets that were never hashed.
//   - LogLevel: debug, info, warn or error.
//   - ConnMaxIdleTime: how long an idle pooled connection is kept.
type Config struct {
	DatabaseDriver         string
	DatabaseDSN            string
	DefaultAdminSecret     string
	CounselorContactLimit  int
	LegacyPlaintextSecrets bool
	LogLevel               string
	ConnMaxIdleTime        time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "safespace.db"
	c.DefaultAdminSecret = "1234"
	c.CounselorContactLimit = 20
	c.LegacyPlaintextSecrets = false
	c.LogLevel = "warn"
	c.ConnMaxIdleTime = 5 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
