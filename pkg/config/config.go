package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/agrihedge/hedging-worker/pkg/postgresql"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // A missing .env file is fine outside local development

	if err := env.Parse(cfg); err != nil {
		return err // Return error if environment variable parsing fails
	}

	return nil
}

// Config holds the configuration for the worker.
type Config struct {
	Commodity string `env:"COMMODITY,required"` // Commodity lane served by this worker, e.g. soybean
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8081"`

	KafkaConfig          `envPrefix:"KAFKA_"`           // Job queue consumer configuration
	TradePublisherConfig `envPrefix:"TRADE_PUBLISHER_"` // Trade event producer configuration
	RedisConfig          `envPrefix:"REDIS_"`           // Redis configuration
	Postgres             postgresql.Config              `envPrefix:"POSTGRES_"`
}

// KafkaConfig holds the configuration for the job queue consumer.
type KafkaConfig struct {
	Topic   string   `env:"TOPIC,required"`
	GroupID string   `env:"GROUP_ID" envDefault:"hedging-worker"`
	Brokers []string `env:"BROKER,required"`
}

// TradePublisherConfig holds the configuration for the trade event producer.
type TradePublisherConfig struct {
	Topic   string   `env:"TOPIC,required"`
	Brokers []string `env:"BROKER,required"`
}

// RedisConfig holds the configuration for Redis client.
type RedisConfig struct {
	Addrs    string `env:"ADDRESS,required"` // Comma-separated list of Redis addresses
	Password string `env:"PASSWORD" envDefault:""`
	Username string `env:"USERNAME" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}
