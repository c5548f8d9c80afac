// Package config loads server and game settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Words   WordsConfig
	Daily   DailyConfig
	Storage StorageConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         string
	ClientOrigin string // single origin allowed for credentialed CORS
	Env          string // "development" or "production"
}

// AuthConfig holds JWT and cookie settings
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	CookieName string
}

// WordsConfig points at optional word list files
type WordsConfig struct {
	AnswersFile string
	AllowedFile string
}

// DailyConfig holds daily challenge settings
type DailyConfig struct {
	Salt string
}

// StorageConfig selects where data lives
type StorageConfig struct {
	DBPath        string
	RedisAddr     string // empty: keep game sessions in memory
	RedisPassword string
	RedisDB       int
	GameTTL       time.Duration
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			Env:          getEnv("NODE_ENV", "development"),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "dev_secret_change_me"),
			TokenTTL:   time.Duration(getEnvInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
			CookieName: getEnv("COOKIE_NAME", "wordle_token"),
		},
		Words: WordsConfig{
			AnswersFile: getEnv("WORDS_ANSWERS_FILE", ""),
			AllowedFile: getEnv("WORDS_ALLOWED_FILE", ""),
		},
		Daily: DailyConfig{
			Salt: getEnv("DAILY_SALT", "local_dev_salt"),
		},
		Storage: StorageConfig{
			DBPath:        getEnv("DB_PATH", "./data/app.db"),
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			GameTTL:       time.Duration(getEnvInt("GAME_TTL_HOURS", 48)) * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt returns k parsed as an integer, or def if unset or malformed.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
