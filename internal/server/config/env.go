package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	envEndpointAddr    = "RECEIPTS_ADDR"
	envDatabaseDSN     = "RECEIPTS_DATABASE_DSN"
	envSecretKey       = "RECEIPTS_SECRET_KEY"
	envTokenValidity   = "RECEIPTS_ACCESS_TOKEN_VALIDITY"
	envShutdownTimeout = "RECEIPTS_SHUTDOWN_TIMEOUT"
	envLogFormat       = "RECEIPTS_LOG_FORMAT"
	envLogLevel        = "RECEIPTS_LOG_LEVEL"
)

// loadDotEnv is a seam for tests. A missing .env file is not an error.
var loadDotEnv = func() { _ = godotenv.Load() }

// parseEnv overlays RECEIPTS_* environment variables, after loading .env
// for local development. Unset, empty or unparsable values keep the
// current setting.
func parseEnv(config *Config) {
	loadDotEnv()

	config.EndpointAddr = getEnv(envEndpointAddr, config.EndpointAddr)
	config.DatabaseDSN = getEnv(envDatabaseDSN, config.DatabaseDSN)
	config.SecretKey = getEnv(envSecretKey, config.SecretKey)
	config.AccessTokenValidityDuration = getEnvDuration(envTokenValidity, config.AccessTokenValidityDuration)
	config.ShutdownTimeout = getEnvDuration(envShutdownTimeout, config.ShutdownTimeout)
	config.LogFormat = getEnv(envLogFormat, config.LogFormat)
	config.LogLevel = getEnv(envLogLevel, config.LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
