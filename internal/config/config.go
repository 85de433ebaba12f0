package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken        string
	DBDSN                string
	Environment          string
	LogLevel             string
	Location             *time.Location
	ScheduleTemplatePath string
	OverlapPolicy        string
	BookingHorizonDays   int
	AgendaHour           int
	DBMaxConns           int32
	MigrationsDir        string
	AdminTelegramIDs     []int64
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:        getenv("TELEGRAM_TOKEN"),
		DBDSN:                getenv("DB_DSN"),
		Environment:          getenv("ENV"),
		LogLevel:             getenv("LOG_LEVEL"),
		ScheduleTemplatePath: getenv("SCHEDULE_TEMPLATE_PATH"),
		OverlapPolicy:        getenv("OVERLAP_POLICY"),
		MigrationsDir:        getenv("MIGRATIONS_DIR"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	tz := getenv("TIMEZONE")
	if tz == "" {
		tz = "America/Los_Angeles"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	cfg.Location = loc

	if cfg.BookingHorizonDays, err = intFromEnv(getenv, "BOOKING_HORIZON_DAYS", 28, 1, 366); err != nil {
		return nil, err
	}
	if cfg.AgendaHour, err = intFromEnv(getenv, "AGENDA_HOUR", 7, 0, 23); err != nil {
		return nil, err
	}

	maxConns, err := intFromEnv(getenv, "DB_MAX_CONNS", 10, 1, 1000)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxConns = int32(maxConns)

	if cfg.AdminTelegramIDs, err = idsFromEnv(getenv("ADMIN_TELEGRAM_IDS")); err != nil {
		return nil, err
	}

	return cfg, nil
}

// idsFromEnv список Telegram ID через запятую
func idsFromEnv(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse ADMIN_TELEGRAM_IDS: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func intFromEnv(getenv func(string) string, key string, def, min, max int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", key, min, max, v)
	}
	return v, nil
}

// IsProduction для выбора конфига логгера
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
