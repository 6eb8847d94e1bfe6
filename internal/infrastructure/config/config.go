package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=2h"`

	Storage  StorageConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

type StorageConfig struct {
	// Driver selects the persistence backend: "file" (flat JSON documents,
	// the default) or "mongo" (single-document collections).
	Driver string `env:"STORAGE_DRIVER, default=file"`
	Dir    string `env:"DATA_DIR,       default=./data"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=poll_system"`
}

type RedisConfig struct {
	// Addr enables the redis-backed auth throttle when set; the in-memory
	// sliding window is used otherwise.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type ThrottleConfig struct {
	Limit  int           `env:"AUTH_THROTTLE_LIMIT,  default=5"`
	Window time.Duration `env:"AUTH_THROTTLE_WINDOW, default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
