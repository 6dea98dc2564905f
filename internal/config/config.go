package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                 string
	AppEnv                  string
	AppPort                 string
	DatabaseURL             string
	RedisURL                string
	NATSURL                 string
	JWTSecret               string
	PassportCacheTTL        time.Duration
	LeaderboardCacheTTL     time.Duration
	NotificationChannelBase string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PASSPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Passport API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cache.passport_ttl", "5m")
	v.SetDefault("cache.leaderboard_ttl", "1m")
	v.SetDefault("notification.channel", "passport:notifications")

	passportTTL, err := parseTTL(v.GetString("cache.passport_ttl"), 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid passport cache ttl: %w", err)
	}

	leaderboardTTL, err := parseTTL(v.GetString("cache.leaderboard_ttl"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid leaderboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                 v.GetString("app.name"),
		AppEnv:                  v.GetString("app.env"),
		AppPort:                 v.GetString("app.port"),
		DatabaseURL:             v.GetString("database.url"),
		RedisURL:                v.GetString("redis.url"),
		NATSURL:                 v.GetString("nats.url"),
		JWTSecret:               v.GetString("jwt.secret"),
		PassportCacheTTL:        passportTTL,
		LeaderboardCacheTTL:     leaderboardTTL,
		NotificationChannelBase: v.GetString("notification.channel"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}

func parseTTL(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}

	ttl, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return ttl, nil
}
