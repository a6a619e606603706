package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	Port           int
	PublicDir      string
	DBTimeout      time.Duration
	CORSOrigins    []string
	AdminJWTSecret string
	Logger         LoggerConfig
	Kafka          KafkaConfig
	Tracing        TracingConfig
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// KafkaConfig enables order events when Brokers is non-empty.
type KafkaConfig struct {
	Brokers    []string
	OrderTopic string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

// Load reads .env (when present) and the process environment into AppEnv.
// A returned error means the service must not start.
func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env not loaded")
	}

	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGODB_URI", getEnvOrDefault("MONGO_URI", "")),
		DBName:         getEnvOrDefault("DB_NAME", "storefront"),
		Port:           getIntEnv("PORT", 3000),
		PublicDir:      getEnvOrDefault("PUBLIC_DIR", "./public"),
		DBTimeout:      getDurationEnv("DB_TIMEOUT_SECONDS", 5, time.Second),
		CORSOrigins:    getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AdminJWTSecret: getEnvOrDefault("ADMIN_JWT_SECRET", ""),
		Logger: LoggerConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		Kafka: KafkaConfig{
			Brokers:    getListEnv("KAFKA_BROKERS", nil),
			OrderTopic: getEnvOrDefault("KAFKA_ORDER_TOPIC", "orders.received"),
		},
		Tracing: TracingConfig{
			Enabled:     getBoolEnv("OTEL_ENABLED", false),
			ServiceName: getEnvOrDefault("OTEL_SERVICE_NAME", "storefront-backend"),
		},
	}

	return AppEnv.Validate()
}

func (c Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.DBTimeout <= 0 {
		return fmt.Errorf("DB_TIMEOUT_SECONDS must be positive")
	}

	switch c.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if len(c.Kafka.Brokers) > 0 && c.Kafka.OrderTopic == "" {
		return fmt.Errorf("KAFKA_ORDER_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// Address returns the listen address for the HTTP server.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
