package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 10*time.Second, cfg.TrackingInterval)
	require.Equal(t, 15*time.Second, cfg.MyBookingsInterval)
	require.Equal(t, 500.0, cfg.DeliveryFee)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("TRACKING_INTERVAL", "3s")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 3*time.Second, cfg.TrackingInterval)
}

func TestValidate(t *testing.T) {
	ok := App{StorageDriver: "memory", SessionTTL: 1}
	require.NoError(t, ok.validate())

	pg := ok
	pg.StorageDriver = "postgres"
	require.ErrorContains(t, pg.validate(), "DATABASE_URL")
	pg.DatabaseURL = "postgres://x"
	require.NoError(t, pg.validate())

	bad := ok
	bad.StorageDriver = "etcd"
	require.ErrorContains(t, bad.validate(), "etcd")

	ttl := ok
	ttl.SessionTTL = 0
	require.Error(t, ttl.validate())
}

func TestSlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, App{LogLevel: "debug"}.SlogLevel())
	require.Equal(t, slog.LevelWarn, App{LogLevel: "WARN"}.SlogLevel())
	require.Equal(t, slog.LevelInfo, App{LogLevel: "chatty"}.SlogLevel())
}
