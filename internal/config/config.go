package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	StorageURL          string // blob store base URL for ad images
	StorageSecretKey    string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool

	// ModerationRequired controls whether new ads start pending (admin review)
	// or go straight to active.
	ModerationRequired bool
	// AdTTLDays is the ad lifetime used to stamp expires_at on create.
	AdTTLDays int
	// DefaultPageSize / MaxPageSize bound the listing pagination contract.
	DefaultPageSize int
	MaxPageSize     int
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	ttl := viper.GetInt("AD_TTL_DAYS")
	if ttl <= 0 {
		ttl = 30
	}
	pageSize := viper.GetInt("DEFAULT_PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 12
	}
	maxPage := viper.GetInt("MAX_PAGE_SIZE")
	if maxPage <= 0 {
		maxPage = 50
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		StorageURL:          viper.GetString("STORAGE_URL"),
		StorageSecretKey:    viper.GetString("STORAGE_SECRET_KEY"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		ModerationRequired:  strings.EqualFold(viper.GetString("MODERATION_REQUIRED"), "true"),
		AdTTLDays:           ttl,
		DefaultPageSize:     pageSize,
		MaxPageSize:         maxPage,
	}, nil
}
