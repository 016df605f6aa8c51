package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	appNameVar    = "APP_NAME"
	apiBaseURLVar = "OUTFITLY_API_URL"
	dataFolderVar = "OUTFITLY_DATA_DIR"
	timeoutVar    = "OUTFITLY_HTTP_TIMEOUT"
	logLevelVar   = "OUTFITLY_LOG_LEVEL"

	defaultHTTPTimeout = 30 * time.Second
)

// EnvVars reads configuration from the environment, with defaults that
// make the client usable against a local backend out of the box.
type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Outfitly")
}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:3000/api")
}

// GetDataFolder returns the directory holding durable client state
// (the credential keyring).
func (EnvVars) GetDataFolder() string {
	if folder := os.Getenv(dataFolderVar); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".outfitly"
	}
	return filepath.Join(home, ".outfitly")
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	timeout, err := time.ParseDuration(GetEnv(timeoutVar, "30s"))
	if err != nil {
		return defaultHTTPTimeout
	}
	return timeout
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
