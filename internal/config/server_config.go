package config

import (
	"errors"
	"fmt"
	"time"
)

type ServerConfig struct {
	Port             int           `mapstructure:"port"`
	MetricsPort      int           `mapstructure:"metrics_port"`
	CorsOrigin       string        `mapstructure:"cors_origin"`
	StagingDir       string        `mapstructure:"staging_dir"`
	MaxUploadSizeMB  int64         `mapstructure:"max_upload_size_mb"`
	StagedFileMaxAge time.Duration `mapstructure:"staged_file_max_age"`
}

func (config ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", config.Port)
}

func (config ServerConfig) MaxUploadSize() int64 {
	return config.MaxUploadSizeMB << 20
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port <= 0 || config.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
	}
	if config.MetricsPort < 0 || config.MetricsPort > 65535 || config.MetricsPort == config.Port {
		errs = append(errs, fmt.Errorf("invalid metrics port: %d", config.MetricsPort))
	}
	if config.CorsOrigin == "" {
		errs = append(errs, errors.New("missing variable: cors_origin"))
	}
	if config.StagingDir == "" {
		errs = append(errs, errors.New("missing variable: staging_dir"))
	}
	if config.MaxUploadSizeMB <= 0 {
		errs = append(errs, errors.New("max_upload_size_mb must be greater than zero"))
	}
	if config.StagedFileMaxAge <= 0 {
		errs = append(errs, errors.New("staged_file_max_age must be greater than zero"))
	}

	return errors.Join(errs...)
}

func (config ServerConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"server.port":         "PORT",
		"server.metrics_port": "METRICS_PORT",
		"server.cors_origin":  "CORS_ORIGIN",
		"server.staging_dir":  "STAGING_DIR",
	})
}
