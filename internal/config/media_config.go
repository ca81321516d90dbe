package config

import (
	"fmt"
	"strings"
	"time"
)

type MediaConfig struct {
	APIKey               string        `mapstructure:"api_key"`
	UploadURL            string        `mapstructure:"upload_url"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

func (config MediaConfig) validate() error {

	var missingFields []string

	if config.APIKey == "" {
		missingFields = append(missingFields, "api_key")
	}

	if config.UploadURL == "" {
		missingFields = append(missingFields, "upload_url")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be greater than zero")
	}

	return nil
}

func (config MediaConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"media.api_key":    "MEDIA_API_KEY",
		"media.upload_url": "MEDIA_UPLOAD_URL",
	})
}
