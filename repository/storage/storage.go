// Package storage keeps per-session client state (the keys a browser would
// hold in local storage) on the server.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	KeyUser            = "travelease_user"
	KeyToken           = "travelease_token"
	KeyVehicles        = "travelease_vehicles"
	KeyFeedbacks       = "travelease_feedbacks"
	KeySelectedVehicle = "selected_vehicle"
	KeyDeliveryDetails = "delivery_details"
)

// SharedSession holds state that is not tied to one visitor, such as the
// last good vehicle list.
const SharedSession = "_shared"

var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	Get(ctx context.Context, sid, key string) ([]byte, error)
	Set(ctx context.Context, sid, key string, value []byte) error
	Delete(ctx context.Context, sid string, keys ...string) error
	// Clear drops every key of the session.
	Clear(ctx context.Context, sid string) error
	Close() error
}

// Sweeper is implemented by stores that need explicit expiry.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int64, error)
}

func GetJSON(ctx context.Context, s Store, sid, key string, out any) error {
	raw, err := s.Get(ctx, sid, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("storage: decode %s: %w", key, err)
	}
	return nil
}

func SetJSON(ctx context.Context, s Store, sid, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	return s.Set(ctx, sid, key, raw)
}

// Config selects and configures a Store implementation.
type Config struct {
	Driver      string
	TTL         time.Duration
	RedisAddr   string
	DatabaseURL string
	SQLitePath  string
}

// Open builds the configured store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(cfg.TTL), nil
	case "redis":
		return NewRedis(ctx, cfg.RedisAddr, cfg.TTL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL, cfg.TTL)
	case "sqlite":
		return NewSQLite(ctx, cfg.SQLitePath, cfg.TTL)
	}
	return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
}
