package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Booking   BookingConfig   `mapstructure:"booking"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

// BookingConfig carries the availability policy knobs.
type BookingConfig struct {
	// HorizonDays bounds how far ahead a date is bookable (today + N).
	HorizonDays int `mapstructure:"horizon_days"`
	// SlotDurationMinutes is the fixed slot increment.
	SlotDurationMinutes int `mapstructure:"slot_duration_minutes"`
	// GranularityMinutes is the minute boundary schedule ranges must align to.
	GranularityMinutes int `mapstructure:"granularity_minutes"`
	// ScheduleCacheTTL bounds how stale a cached schedule may be.
	ScheduleCacheTTL time.Duration `mapstructure:"schedule_cache_ttl"`
}

type WorkerConfig struct {
	OutboxBatchSize    int           `mapstructure:"outbox_batch_size"`
	OutboxPollInterval time.Duration `mapstructure:"outbox_poll_interval"`
	CompletionInterval time.Duration `mapstructure:"completion_interval"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	Enabled  bool   `mapstructure:"enabled"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&config)
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.request_timeout", 30*time.Second)
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("booking.horizon_days", 30)
	viper.SetDefault("booking.slot_duration_minutes", 30)
	viper.SetDefault("booking.granularity_minutes", 30)
	viper.SetDefault("booking.schedule_cache_ttl", time.Minute)
	viper.SetDefault("worker.outbox_batch_size", 50)
	viper.SetDefault("worker.outbox_poll_interval", 5*time.Second)
	viper.SetDefault("worker.completion_interval", 10*time.Minute)
	viper.SetDefault("rate_limit.requests_per_second", 50.0)
	viper.SetDefault("rate_limit.burst", 100)
}

func applyEnvOverrides(config *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		config.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Database.Port = p
		}
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.JWT.Secret = secret
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		config.Redis.URL = url
	}
}
