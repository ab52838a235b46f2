package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is comparable on purpose: app.validate checks it against the zero
// value to catch missed initialization.
type Config struct {
	Environment string
	ServerPort  string

	BackendBaseURL string
	BackendTimeout int // seconds

	CacheSessionAddress  string
	CacheResourceAddress string
	CachePassword        string

	PreviewDbPath string

	SessionTTLHours  int
	ResourceTTLHours int
}

func InitConfig() (Config, error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:3030/api")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("CACHE_SESSION_ADDRESS", "localhost:6379")
	viper.SetDefault("CACHE_RESOURCE_ADDRESS", "localhost:6379")
	viper.SetDefault("CACHE_PASSWORD", "")
	viper.SetDefault("PREVIEW_DB_PATH", "data/previews.db")
	viper.SetDefault("SESSION_TTL_HOURS", 72)
	viper.SetDefault("RESOURCE_TTL_HOURS", 24)

	config := Config{
		Environment:          viper.GetString("ENVIRONMENT"),
		ServerPort:           viper.GetString("SERVER_PORT"),
		BackendBaseURL:       strings.TrimRight(viper.GetString("BACKEND_BASE_URL"), "/"),
		BackendTimeout:       viper.GetInt("BACKEND_TIMEOUT_SECONDS"),
		CacheSessionAddress:  viper.GetString("CACHE_SESSION_ADDRESS"),
		CacheResourceAddress: viper.GetString("CACHE_RESOURCE_ADDRESS"),
		CachePassword:        viper.GetString("CACHE_PASSWORD"),
		PreviewDbPath:        viper.GetString("PREVIEW_DB_PATH"),
		SessionTTLHours:      viper.GetInt("SESSION_TTL_HOURS"),
		ResourceTTLHours:     viper.GetInt("RESOURCE_TTL_HOURS"),
	}

	return config, nil
}
