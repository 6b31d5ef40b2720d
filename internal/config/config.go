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
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	JWTSecret           string
	LeetCodeBaseURL     string
	CodeforcesBaseURL   string
	UpstreamTimeout     time.Duration
	CatalogPageSize     int
	CatalogPageDelay    time.Duration
	CatalogMaxProblems  int
	LeaderboardCacheTTL time.Duration
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
	v.SetEnvPrefix("CODEARENA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "CodeArena API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("upstream.timeout", "12s")
	v.SetDefault("catalog.page_size", 100)
	v.SetDefault("catalog.page_delay", "1s")
	v.SetDefault("catalog.max_problems", 500)
	v.SetDefault("leaderboard.cache_ttl", "30s")

	timeout, err := parseDuration(v, "upstream.timeout")
	if err != nil {
		return Config{}, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	pageDelay, err := parseDuration(v, "catalog.page_delay")
	if err != nil {
		return Config{}, fmt.Errorf("invalid catalog page delay: %w", err)
	}

	cacheTTL, err := parseDuration(v, "leaderboard.cache_ttl")
	if err != nil {
		return Config{}, fmt.Errorf("invalid leaderboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		JWTSecret:           v.GetString("jwt.secret"),
		LeetCodeBaseURL:     v.GetString("leetcode.base_url"),
		CodeforcesBaseURL:   v.GetString("codeforces.base_url"),
		UpstreamTimeout:     timeout,
		CatalogPageSize:     v.GetInt("catalog.page_size"),
		CatalogPageDelay:    pageDelay,
		CatalogMaxProblems:  v.GetInt("catalog.max_problems"),
		LeaderboardCacheTTL: cacheTTL,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.CatalogPageSize <= 0 {
		cfg.CatalogPageSize = 100
	}
	if cfg.CatalogMaxProblems <= 0 {
		cfg.CatalogMaxProblems = 500
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return 0, fmt.Errorf("%s is empty", key)
	}
	return time.ParseDuration(raw)
}
