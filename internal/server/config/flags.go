package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/planit/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-l string   log level
//	-s string   JWT signing secret (development only; visible in ps and shell history)
//	-i string   JWT issuer
//	-u string   JWT audience
//	-t int      JWT expiry, minutes
//	-k int      JWT key size, bits
//
// Only these flags are parsed; anything else in args (e.g. -c) is
// filtered out first.
func parseFlags(config *Config, args []string) error {
	fs := newFlagSet(config)
	if err := fs.Parse(flagx.FilterArgs(args, flagx.Names(fs))); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

// SecretFlagUsage is the help text of -s. Outside development the secret
// comes from PLANIT_JWT_SECRET or jwt_secret in the JSON file.
const SecretFlagUsage = "JWT signing secret, development only: visible in ps and shell history; use PLANIT_JWT_SECRET or jwt_secret instead"

func newFlagSet(config *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.JWT.Secret, "s", config.JWT.Secret, SecretFlagUsage)
	fs.StringVar(&config.JWT.Issuer, "i", config.JWT.Issuer, "JWT issuer")
	fs.StringVar(&config.JWT.Audience, "u", config.JWT.Audience, "JWT audience")
	fs.IntVar(&config.JWT.ExpiryInMinutes, "t", config.JWT.ExpiryInMinutes, "JWT expiry (in minutes)")
	fs.IntVar(&config.JWT.KeySizeInBits, "k", config.JWT.KeySizeInBits, "JWT key size (in bits)")

	return fs
}
