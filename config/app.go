package config

import "time"

type App struct {
	Port     string `env:"APP_PORT" env-default:"8080"`
	Env      string `env:"APP_ENV" env-default:"dev"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	BackendURL     string        `env:"BACKEND_URL" env-default:"http://localhost:9097"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" env-default:"10s"`

	SessionSecret string `env:"SESSION_SECRET" env-default:"local_dev_secret"`
	SessionTTL    int    `env:"SESSION_TTL_HOURS" env-default:"24"`

	// memory | redis | postgres | sqlite
	StorageDriver string `env:"STORAGE_DRIVER" env-default:"memory"`
	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SQLitePath    string `env:"SQLITE_PATH" env-default:"travelease.db"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" env-separator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" env-default:"travelease-events"`

	TrackingInterval   time.Duration `env:"TRACKING_INTERVAL" env-default:"10s"`
	MyBookingsInterval time.Duration `env:"MY_BOOKINGS_INTERVAL" env-default:"15s"`
	PaymentDelay       time.Duration `env:"PAYMENT_DELAY" env-default:"2s"`
	DeliveryFee        float64       `env:"DELIVERY_FEE" env-default:"500"`
}
