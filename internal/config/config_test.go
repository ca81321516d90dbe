package config

import (
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfig = `
server:
  port: 5000
  metrics_port: 9090
  cors_origin: "http://localhost:5173"
  staging_dir: "./uploads"
  max_upload_size_mb: 5
  staged_file_max_age: "1h"
db:
  connection_string: "jobboard.db"
media:
  upload_url: "https://api.imgbb.com/1/upload"
  max_requests_per_second: 2
  timeout: "30s"
logger:
  log_level: "INFO"
  app_name: "job-board"
  output_file: "./logs/errors.log"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func Test_Config_FileValuesAreLoaded(t *testing.T) {
	viper.Reset()
	t.Setenv("MEDIA_API_KEY", "key")

	cfg, err := loadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.Addr())
	assert.Equal(t, int64(5<<20), cfg.Server.MaxUploadSize())
	assert.Equal(t, time.Hour, cfg.Server.StagedFileMaxAge)
	assert.Equal(t, "jobboard.db", cfg.DB.ConnectionString)
	assert.Equal(t, float32(2), cfg.Media.MaxRequestsPerSecond)
	assert.Equal(t, 30*time.Second, cfg.Media.Timeout)
	assert.Equal(t, LevelInfo, cfg.Logger.LogLevel)
}

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	viper.Reset()

	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGIN", "https://jobs.example.com")
	t.Setenv("STAGING_DIR", "/tmp/staging")
	t.Setenv("DB_CONNECTION_STRING", "newConnectionString")
	t.Setenv("MEDIA_API_KEY", "overrideKey")
	t.Setenv("MEDIA_UPLOAD_URL", "http://media.local/upload")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := loadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "https://jobs.example.com", cfg.Server.CorsOrigin)
	assert.Equal(t, "/tmp/staging", cfg.Server.StagingDir)
	assert.Equal(t, "newConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, "overrideKey", cfg.Media.APIKey)
	assert.Equal(t, "http://media.local/upload", cfg.Media.UploadURL)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
}

func Test_Config_MissingMediaKey_ShouldFail(t *testing.T) {
	viper.Reset()
	t.Setenv("MEDIA_API_KEY", "")

	_, err := loadConfig(writeConfig(t, testConfig))
	assert.ErrorContains(t, err, "api_key")
}

func Test_Config_MissingFile_ShouldFail(t *testing.T) {
	viper.Reset()

	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
