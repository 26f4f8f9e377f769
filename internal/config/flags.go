package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/safespace/internal/flagx"
)

// parseFlags populates Config fields from command-line flags (see package
// doc). Arguments other than the ones listed are ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-k", "-d", "-s", "-l", "-p", "-v", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDriver, "k", cfg.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.DefaultAdminSecret, "s", cfg.DefaultAdminSecret, "default admin secret")
	fs.IntVar(&cfg.CounselorContactLimit, "l", cfg.CounselorContactLimit, "counselor contacts shown")
	fs.BoolVar(&cfg.LegacyPlaintextSecrets, "p", cfg.LegacyPlaintextSecrets, "accept legacy plaintext secrets")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	idle := fs.Int("i", int(cfg.ConnMaxIdleTime.Seconds()), "connection max idle time (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ConnMaxIdleTime = time.Duration(*idle) * time.Second
}
