package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/receiptkeeper/internal/flagx"
	"github.com/dmitrijs2005/receiptkeeper/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration,
// so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
	LogFormat                   string         `json:"log_format"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config in args, if any. Only keys
// present with a non-zero value override config, so a partial file keeps
// defaults and environment for everything else. An unreadable file or
// invalid JSON panics.
func parseJson(config *Config, args []string) {

	jsonConfigFile := flagx.JSONConfigPath(args)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
