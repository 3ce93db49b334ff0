package config

import "github.com/caarlos0/env/v11"

type envConfig struct {
	EndpointAddrHTTP string `env:"ADDRESS"`
	DatabaseDSN      string `env:"DATABASE_DSN"`
	EncryptionKey    string `env:"ENCRYPTION_KEY"`
	PasswordSalt     string `env:"SALT"`
}

// parseEnv overlays environment variables onto the Config. Set variables win
// over defaults, JSON and flags; unset ones leave the current value alone.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.EncryptionKey != "" {
		config.EncryptionKey = c.EncryptionKey
	}
	if c.PasswordSalt != "" {
		config.PasswordSalt = c.PasswordSalt
	}
}
