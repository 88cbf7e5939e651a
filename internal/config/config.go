package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseDatabaseURL              string `mapstructure:"FIREBASE_DATABASE_URL"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	ClientURL string `mapstructure:"CLIENT_URL"`

	// Web-push (VAPID) settings. Leaving the key pair empty disables
	// availability notifications.
	VAPIDPublicKey  string `mapstructure:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `mapstructure:"VAPID_PRIVATE_KEY"`
	VAPIDSubject    string `mapstructure:"VAPID_SUBJECT"`

	RateLimitPerSec     float64 `mapstructure:"RATE_LIMIT_PER_SEC"`
	RateLimitBurst      int     `mapstructure:"RATE_LIMIT_BURST"`
	CacheTTLSeconds     int     `mapstructure:"CACHE_TTL_SECONDS"`
	NotificationWorkers int     `mapstructure:"NOTIFICATION_WORKERS"`

	// ActivityFeedLimit caps how many activity entries are fetched and
	// served; keeps payloads inside the Firebase free-tier budget.
	ActivityFeedLimit int `mapstructure:"ACTIVITY_FEED_LIMIT"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("RATE_LIMIT_PER_SEC", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("CACHE_TTL_SECONDS", 30)
	viper.SetDefault("NOTIFICATION_WORKERS", 2)
	viper.SetDefault("ACTIVITY_FEED_LIMIT", 50)

	for _, key := range []string{
		"PORT",
		"GIN_MODE",
		"FIREBASE_PROJECT_ID",
		"FIREBASE_DATABASE_URL",
		"GOOGLE_APPLICATION_CREDENTIALS",
		"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
		"CLIENT_URL",
		"VAPID_PUBLIC_KEY",
		"VAPID_PRIVATE_KEY",
		"VAPID_SUBJECT",
		"RATE_LIMIT_PER_SEC",
		"RATE_LIMIT_BURST",
		"CACHE_TTL_SECONDS",
		"NOTIFICATION_WORKERS",
		"ACTIVITY_FEED_LIMIT",
	} {
		viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.FirebaseDatabaseURL == "" {
		return nil, errors.New("FIREBASE_DATABASE_URL is required")
	}
	if cfg.GoogleApplicationCredentials == "" && cfg.FirebaseServiceAccountJSONBase64 == "" {
		return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is required")
	}
	if cfg.ActivityFeedLimit <= 0 {
		cfg.ActivityFeedLimit = 50
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It panics if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
