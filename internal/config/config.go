package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment   string
	DBDSN         string
	HTTPAddr      string
	BaseURL       string
	EncryptionKey string
	JWTSecret     string
	JWTTTL        time.Duration

	// Лимит на отдачу закэшированного ics-файла: CalendarCacheHits раз за CalendarCacheWindow,
	// и принудительная перегенерация раз в CalendarForceRefresh
	CalendarCacheWindow  time.Duration
	CalendarCacheHits    int
	CalendarForceRefresh time.Duration

	// Как часто чистить устаревшие счётчики в памяти
	CounterPurgeInterval time.Duration
}

// Load загружает конфигурацию из .env и переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию из функции поиска переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Environment:   getenv("ENV"),
		DBDSN:         getenv("DB_DSN"),
		HTTPAddr:      getenv("HTTP_ADDR"),
		BaseURL:       getenv("BASE_URL"),
		EncryptionKey: getenv("RESOURCE_IDENTIFIER_ENCRYPTION_KEY"),
		JWTSecret:     getenv("JWT_SECRET"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}

	var err error
	if cfg.CalendarCacheHits, err = intVar(getenv, "CALENDAR_CACHE_HITS", 2); err != nil {
		return nil, err
	}
	if cfg.CalendarCacheWindow, err = durationVar(getenv, "CALENDAR_CACHE_WINDOW", time.Hour); err != nil {
		return nil, err
	}
	if cfg.CalendarForceRefresh, err = durationVar(getenv, "CALENDAR_FORCE_REFRESH", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = durationVar(getenv, "JWT_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CounterPurgeInterval, err = durationVar(getenv, "COUNTER_PURGE_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.EncryptionKey == "" {
		return nil, fmt.Errorf("RESOURCE_IDENTIFIER_ENCRYPTION_KEY is required but not set")
	}
	if len(cfg.EncryptionKey) >= 32 {
		return nil, fmt.Errorf("RESOURCE_IDENTIFIER_ENCRYPTION_KEY must be shorter than 32 bytes")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if cfg.CalendarCacheHits < 1 {
		return nil, fmt.Errorf("CALENDAR_CACHE_HITS must be positive, got %d", cfg.CalendarCacheHits)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	raw := getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return v, nil
}

func durationVar(getenv func(string) string, name string, def time.Duration) (time.Duration, error) {
	raw := getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, raw)
	}
	return v, nil
}
