package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	// OrdersPageLimit caps the number of orders returned per assigned-orders
	// query.
	OrdersPageLimit int `env:"ORDERS_PAGE_LIMIT, default=100"`

	// SeedDemoData provisions a demo agent and orders at startup.
	SeedDemoData bool `env:"SEED_DEMO_DATA, default=false"`

	Mongo MongoConfig
	Redis RedisConfig
	Hub   HubConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=agent_tracking"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type HubConfig struct {
	// SendBuffer bounds each session's outbound frame queue; overflow
	// disconnects the session.
	SendBuffer int `env:"HUB_SEND_BUFFER, default=32"`
	// Workers and QueueBuffer size the async location persistence pool.
	Workers     int `env:"LOCATION_WORKERS,      default=4"`
	QueueBuffer int `env:"LOCATION_QUEUE_BUFFER, default=256"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
