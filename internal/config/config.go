// Package config reads process configuration from the environment. Binaries
// call godotenv.Load first so a local .env file feeds the same variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig

	// CacheTTL bounds how long attribute rows and directory listings live in redis.
	CacheTTL time.Duration
	// DateFormat is the Go layout used for joined date and birthday labels.
	DateFormat string
	// LabelsFile optionally points at a YAML file of label overrides.
	LabelsFile  string
	MetricsAddr string
	// ConnectRetries is how often the binaries retry database, redis and kafka.
	ConnectRetries int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
	PollInterval  time.Duration
}

// Load reads the environment and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getenv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Kafka: KafkaConfig{
			Broker:        os.Getenv("KAFKA_BROKER"),
			ConsumerGroup: getenv("KAFKA_CONSUMER_GROUP", "go-hrm-directory-cache"),
		},
		DateFormat:  getenv("DATE_FORMAT", "2006-01-02"),
		LabelsFile:  os.Getenv("LABELS_FILE"),
		MetricsAddr: getenv("METRICS_ADDR", ":9090"),
	}

	var err error
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.Kafka.PollInterval, err = durationEnv("OUTBOX_POLL_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.ConnectRetries, err = intEnv("CONNECT_RETRIES", 5); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: DB_HOST must be set")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: DB_USER must be set")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("config: DB_NAME must be set")
	}
	if c.ConnectRetries < 1 {
		return fmt.Errorf("config: CONNECT_RETRIES must be positive")
	}
	return nil
}

// DSN returns the key/value connection string gorm's postgres driver expects.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL returns the postgres:// form used by golang-migrate.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
