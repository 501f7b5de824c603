package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/planit/internal/flagx"
	"github.com/dmitrijs2005/planit/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept "10s" strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP   string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC   string         `json:"endpoint_addr_grpc"`
	DatabaseDSN        string         `json:"database_dsn"`
	LogLevel           string         `json:"log_level"`
	LogFormat          string         `json:"log_format"`
	BcryptCost         int            `json:"bcrypt_cost"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
	JWTSecret          string         `json:"jwt_secret"`
	JWTIssuer          string         `json:"jwt_issuer"`
	JWTAudience        string         `json:"jwt_audience"`
	JWTExpiryInMinutes int            `json:"jwt_expiry_in_minutes"`
	JWTKeySizeInBits   int            `json:"jwt_key_size_in_bits"`
}

// parseJson loads the file named by -c / -config, if any, and copies every
// non-empty value into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setInt(&config.BcryptCost, c.BcryptCost)
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	setString(&config.JWT.Secret, c.JWTSecret)
	setString(&config.JWT.Issuer, c.JWTIssuer)
	setString(&config.JWT.Audience, c.JWTAudience)
	setInt(&config.JWT.ExpiryInMinutes, c.JWTExpiryInMinutes)
	setInt(&config.JWT.KeySizeInBits, c.JWTKeySizeInBits)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
