package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port             string   `env:"PORT,               default=8080"`
	Env              string   `env:"ENV,                default=development"`
	LogLevel         string   `env:"LOG_LEVEL,          default=info"`
	JWTSecret        string   `env:"JWT_SECRET"`
	JWTExpireMinutes int      `env:"JWT_EXPIRE_MINUTES, default=30"`
	BcryptCost       int      `env:"BCRYPT_COST,        default=10"`
	CORSOrigins      []string `env:"CORS_ORIGINS,       default=http://localhost:3000\\,http://localhost:5173"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=notebook_llm"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// JWT_SECRET has no default on purpose: the service refuses to start without
// a signing secret.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
