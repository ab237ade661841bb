// Package config загружает конфигурацию сервера из окружения.
// Клиент конфигурируется флагами (см. cmd/client).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config конфигурация сервера
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Realtime  RealtimeConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig параметры HTTP сервера
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig параметры хранилища записей
type DatabaseConfig struct {
	Path string // путь к файлу SQLite
}

// JWTConfig параметры выпуска токенов
type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// RealtimeConfig параметры realtime hub
type RealtimeConfig struct {
	MaxSessionsPerUser int
	WriteWait          time.Duration
	PongWait           time.Duration
	PingPeriod         time.Duration
}

// RateLimitConfig лимиты для auth эндпоинтов
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Enabled  bool
}

// LoggingConfig параметры логирования
type LoggingConfig struct {
	Level slog.Level
}

// Load читает конфигурацию из окружения (.env файл, если присутствует)
func Load() (*Config, error) {
	// .env опционален; в проде переменные приходят из окружения
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TTL: %w", err)
	}

	window, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "tasksync.db"),
		},
		JWT: JWTConfig{
			Secret:         secret,
			AccessTokenTTL: ttl,
		},
		Realtime: RealtimeConfig{
			MaxSessionsPerUser: getEnvAsInt("WS_MAX_SESSIONS_PER_USER", 8),
			WriteWait:          10 * time.Second,
			PongWait:           60 * time.Second,
			PingPeriod:         54 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 30),
			Window:   window,
			Enabled:  getEnvAsBool("RATE_LIMIT_ENABLED", true),
		},
		Logging: LoggingConfig{
			Level: parseLogLevel(getEnv("LOG_LEVEL", "info")),
		},
	}, nil
}

// Addr возвращает адрес для http.Server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
