package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type SearchConfig struct {
	PerPage              int           `mapstructure:"per_page"`
	Debounce             time.Duration `mapstructure:"debounce"`
	ClickDebounce        time.Duration `mapstructure:"click_debounce"`
	ReferenceRefreshCron string        `mapstructure:"reference_refresh_cron"`
}

func (config SearchConfig) validate() error {
	var errs []error

	if config.PerPage <= 0 || config.PerPage > 100 {
		errs = append(errs, fmt.Errorf("per_page must be between 1 and 100"))
	}
	if config.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("debounce must be positive"))
	}
	if config.ClickDebounce <= 0 {
		errs = append(errs, fmt.Errorf("click_debounce must be positive"))
	}
	if _, err := cron.ParseStandard(config.ReferenceRefreshCron); err != nil {
		errs = append(errs, fmt.Errorf("invalid reference_refresh_cron: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config SearchConfig) bindEnvironmentVariables() error {
	var errs []error
	if err := viper.BindEnv("search.per_page", "SEARCH_PER_PAGE"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("search.debounce", "SEARCH_DEBOUNCE"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
