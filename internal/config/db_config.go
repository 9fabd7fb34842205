package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	// sqlite allows a single writer, more connections only add lock contention
	MaxOpenConnections int `mapstructure:"max_open_connections"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.MaxOpenConnections < 0 {
		return fmt.Errorf("max_open_connections must be non-negative")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	if err := viper.BindEnv("db.max_open_connections", "DB_MAX_OPEN_CONNECTIONS"); err != nil {
		return err
	}
	return viper.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}
