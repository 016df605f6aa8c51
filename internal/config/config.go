package config

import "time"

// Config is the read-only runtime configuration of the client.
type Config interface {
	GetAppName() string
	GetAPIBaseURL() string
	GetDataFolder() string
	GetHTTPTimeout() time.Duration
	GetLogLevel() string
}

func New() Config {
	return EnvVars{}
}
