package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Load reads an optional .env file and then the process environment.
func Load() (App, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("dotenv load failed", "err", err)
	}

	var cfg App
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return App{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return App{}, err
	}
	return cfg, nil
}

func (a App) validate() error {
	switch a.StorageDriver {
	case "memory", "redis", "sqlite":
	case "postgres":
		if a.DatabaseURL == "" {
			return errors.New("config error: DATABASE_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("config error: unknown STORAGE_DRIVER %q", a.StorageDriver)
	}
	if a.SessionTTL <= 0 {
		return errors.New("config error: SESSION_TTL_HOURS must be > 0")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (a App) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(a.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
