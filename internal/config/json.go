package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/safespace/internal/flagx"
	"github.com/dmitrijs2005/safespace/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from a zero value.
type JsonConfig struct {
	DatabaseDriver         *string         `json:"database_driver"`
	DatabaseDSN            *string         `json:"database_dsn"`
	DefaultAdminSecret     *string         `json:"default_admin_secret"`
	CounselorContactLimit  *int            `json:"counselor_contact_limit"`
	LegacyPlaintextSecrets *bool           `json:"legacy_plaintext_secrets"`
	LogLevel               *string         `json:"log_level"`
	ConnMaxIdleTime        *timex.Duration `json:"conn_max_idle_time"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.DatabaseDriver != nil {
		cfg.DatabaseDriver = *jc.DatabaseDriver
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.DefaultAdminSecret != nil {
		cfg.DefaultAdminSecret = *jc.DefaultAdminSecret
	}
	if jc.CounselorContactLimit != nil {
		cfg.CounselorContactLimit = *jc.CounselorContactLimit
	}
	if jc.LegacyPlaintextSecrets != nil {
		cfg.LegacyPlaintextSecrets = *jc.LegacyPlaintextSecrets
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.ConnMaxIdleTime != nil {
		cfg.ConnMaxIdleTime = jc.ConnMaxIdleTime.Duration
	}
}
