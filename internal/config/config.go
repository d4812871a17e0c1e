package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	StoreDriverDynamoDB = "dynamodb"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"3011"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty   bool   `env:"LOG_PRETTY" envDefault:"false"`
	CORSOrigin  string `env:"CORS_ORIGIN" envDefault:"http://localhost:3010"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"dynamodb"`

	DynamoDB  DynamoDBConfig
	Auth      AuthConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type DynamoDBConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT"`
	AutoCreate      bool   `env:"DYNAMODB_AUTO_CREATE" envDefault:"false"`
	QuotesTable     string `env:"QUOTES_TABLE" envDefault:"quotes"`
	AdminsTable     string `env:"ADMINS_TABLE" envDefault:"admins"`
	MessagesTable   string `env:"MESSAGES_TABLE" envDefault:"messages"`
	ServicesTable   string `env:"SERVICES_TABLE" envDefault:"services"`
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB" envDefault:"0"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

type RateLimitConfig struct {
	Burst     int `env:"RATE_LIMIT_BURST" envDefault:"5"`
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"5"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.NewConfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.NewConfig: %w", err)
	}
	return cfg, nil
}

// NewDynamoDBConfig loads only the DynamoDB section, for tools that do not
// serve HTTP (e.g. cmd/createadmin).
func NewDynamoDBConfig() (*DynamoDBConfig, error) {
	cfg := &DynamoDBConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.NewDynamoDBConfig: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreDriverDynamoDB, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0, got %v", c.Auth.SessionTTL)
	}
	if c.RateLimit.Burst < 1 || c.RateLimit.PerMinute < 1 {
		return fmt.Errorf("rate limit values must be >= 1")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
