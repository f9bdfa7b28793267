package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	BotToken    string
	BotWorkers  int
	BotTimezone string

	PremiumEnabled bool

	PluralRule string
	BotLang    string

	HTTPAddr string

	LogLevel  string
	LogFormat string

	DBType            string
	DBPath            string
	DBMaxOpenConn     int
	DBConnMaxLifetime time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockTTL       time.Duration

	CatalogPath string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:           getenv("APP_SERVICE", "togetherbot"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		BotToken:          strings.TrimSpace(getenv("BOT_TOKEN", "")),
		BotWorkers:        getenvInt("BOT_WORKERS", 16),
		BotTimezone:       getenv("BOT_TIMEZONE", "Europe/Moscow"),
		PremiumEnabled:    getenvBool("PREMIUM_ENABLED", true),
		PluralRule:        strings.ToLower(strings.TrimSpace(getenv("PLURAL_RULE", "slavic"))),
		BotLang:           strings.TrimSpace(getenv("BOT_LANG", "ru")),
		HTTPAddr:          strings.TrimSpace(getenv("HTTP_ADDR", ":8080")),
		LogLevel:          strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
		LogFormat:         strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBPath:            getenv("DATABASE_PATH", "relationships.db"),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 1),
		DBConnMaxLifetime: getenvDuration("DATABASE_CONN_MAX_LIFETIME", 0),
		RedisAddr:         strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword:     getenv("REDIS_PASSWORD", ""),
		RedisDB:           getenvInt("REDIS_DB", 0),
		LockTTL:           getenvDuration("LOCK_TTL", 5*time.Second),
		CatalogPath:       strings.TrimSpace(getenv("CATALOG_PATH", "")),
	}
}

// Location resolves the configured bot timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	name := strings.TrimSpace(c.BotTimezone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
