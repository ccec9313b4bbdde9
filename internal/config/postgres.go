package config

import "os"

const postgresDSNEnv = "POSTGRES_DSN"

type PostgresConfig struct {
	DSN string
}

func LoadPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		DSN: os.Getenv(postgresDSNEnv),
	}
}

func (c *PostgresConfig) Validate() error {
	if c == nil || c.DSN == "" {
		return ErrPostgresDSNMissing
	}
	return nil
}
