package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger"`
	Bot     BotConfig     `mapstructure:"bot"`
	HH      HHConfig      `mapstructure:"hh"`
	Search  SearchConfig  `mapstructure:"search"`
	DB      DBConfig      `mapstructure:"db"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("can't load .env file: %v", err)
	}

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.Reset()
	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	setDefaults()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("hh.base_url", "https://api.hh.ru")
	viper.SetDefault("hh.max_requests_per_second", 5)
	viper.SetDefault("hh.timeout", "30s")
	viper.SetDefault("search.per_page", 20)
	viper.SetDefault("search.debounce", "2s")
	viper.SetDefault("search.click_debounce", "100ms")
	viper.SetDefault("search.reference_refresh_cron", "0 3 * * *")
	viper.SetDefault("metrics.port", 8080)
	viper.SetDefault("logger.log_level", string(LevelInfo))
	viper.SetDefault("logger.app_name", "hh-vacancy-search")
	viper.SetDefault("logger.output_file", "./logs/errors.log")
}

func bindEnvironmentVariables() error {
	var errs []error

	bot, hh, search, db, logger, metrics := BotConfig{}, HHConfig{}, SearchConfig{}, DBConfig{}, LoggerConfig{}, MetricsConfig{}

	if err := bot.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("BotConfig: %w", err))
	}

	if err := hh.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("HHConfig: %w", err))
	}

	if err := search.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("SearchConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := metrics.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("MetricsConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Bot.validate(); err != nil {
		errs = append(errs, fmt.Errorf("BotConfig: %w", err))
	}

	if err := config.HH.validate(); err != nil {
		errs = append(errs, fmt.Errorf("HHConfig: %w", err))
	}

	if err := config.Search.validate(); err != nil {
		errs = append(errs, fmt.Errorf("SearchConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Metrics.validate(); err != nil {
		errs = append(errs, fmt.Errorf("MetricsConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func createMultiError(errs []error) error {
	return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
}
