package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"planning-bot/pkg/timeutil"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Режимы работы с данными
const (
	BackendAPI   = "api"   // REST API планирования
	BackendLocal = "local" // Локальная база sqlite
)

type BotConfig struct {
	TelegramToken string
	TelegramDebug bool

	BackendMode  string
	APIBaseURL   string
	APIToken     string
	APIEmail     string
	APIPassword  string
	APITimeout   time.Duration
	APIRateLimit int64
	DatabaseURL  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int64
	StateTTL      time.Duration

	MetricsAddr  string
	LogLevel     logrus.Level
	WeekStartsOn time.Weekday
	SettingsPath string
}

var instance *BotConfig
var once sync.Once

// GetBotConfig читает конфигурацию один раз и завершает процесс при ошибке
func GetBotConfig() *BotConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("could not load .env file: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("invalid configuration: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load собирает конфигурацию из переменных окружения
func Load() (*BotConfig, error) {
	cfg := &BotConfig{
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramDebug: getEnvAsBool("TELEGRAM_DEBUG", false),
		BackendMode:   getEnv("BACKEND_MODE", BackendAPI),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8000"),
		APIToken:      getEnv("API_TOKEN", ""),
		APIEmail:      getEnv("API_EMAIL", ""),
		APIPassword:   getEnv("API_PASSWORD", ""),
		APITimeout:    getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		APIRateLimit:  getEnvAsInt("API_RATE_LIMIT", 10),
		DatabaseURL:   getEnv("DATABASE_URL", "planning.db"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		StateTTL:      getEnvAsDuration("STATE_TTL", 24*time.Hour),
		MetricsAddr:   getEnv("METRICS_ADDR", ""),
		SettingsPath:  getEnv("PLANNING_SETTINGS", ""),
	}

	switch cfg.BackendMode {
	case BackendAPI:
		if cfg.APIBaseURL == "" {
			return nil, fmt.Errorf("API_BASE_URL is required in %s mode", BackendAPI)
		}
	case BackendLocal:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required in %s mode", BackendLocal)
		}
	default:
		return nil, fmt.Errorf("unknown BACKEND_MODE %q", cfg.BackendMode)
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	weekday, err := timeutil.ParseWeekday(getEnv("WEEK_STARTS_ON", "monday"))
	if err != nil {
		return nil, err
	}
	cfg.WeekStartsOn = weekday

	return cfg, nil
}

// HasCredentials - можно ли получить токен через /token
func (c *BotConfig) HasCredentials() bool {
	return c.APIEmail != "" && c.APIPassword != ""
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if val, err := time.ParseDuration(valStr); err == nil {
		return val
	}

	return defaultVal
}
