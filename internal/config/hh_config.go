package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HHConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	UserAgent            string        `mapstructure:"user_agent"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

func (config HHConfig) validate() error {

	var missingFields []string

	if config.BaseURL == "" {
		missingFields = append(missingFields, "base_url")
	}

	if config.UserAgent == "" {
		missingFields = append(missingFields, "user_agent")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.MaxRequestsPerSecond <= 0 {
		return fmt.Errorf("max_requests_per_second must be positive")
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	return nil
}

func (config HHConfig) bindEnvironmentVariables() error {
	var errs []error
	if err := viper.BindEnv("hh.user_agent", "HH_USER_AGENT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("hh.base_url", "HH_BASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("hh.max_requests_per_second", "HH_MAX_REQUESTS_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("hh.timeout", "HH_TIMEOUT"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
