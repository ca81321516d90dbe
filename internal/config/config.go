package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Media  MediaConfig  `mapstructure:"media"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	file := configFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}

	config, err := loadConfig(file)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

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
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.metrics_port", 9090)
	viper.SetDefault("server.cors_origin", "http://localhost:5173")
	viper.SetDefault("server.staging_dir", "./uploads")
	viper.SetDefault("server.max_upload_size_mb", 5)
	viper.SetDefault("server.staged_file_max_age", "1h")
	viper.SetDefault("media.upload_url", "https://api.imgbb.com/1/upload")
	viper.SetDefault("media.timeout", "30s")
	viper.SetDefault("logger.log_level", string(LevelInfo))
	viper.SetDefault("logger.app_name", "job-board")
	viper.SetDefault("logger.output_file", "./logs/errors.log")
}

func bindEnvironmentVariables() error {
	var errs []error

	server, db, media, logger := ServerConfig{}, DBConfig{}, MediaConfig{}, LoggerConfig{}

	if err := server.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := media.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("MediaConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Server.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Media.validate(); err != nil {
		errs = append(errs, fmt.Errorf("MediaConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
