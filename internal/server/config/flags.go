package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-k string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (json, text, zap)
//
// args are first filtered to the flags above with flagx.FilterArgs, so
// -c/-config and unknown flags do not break parsing.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-k", "-t", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
