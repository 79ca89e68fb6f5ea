package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting for the API.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-secret-please-change"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`

	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"WithdrawalBot<onboarding@resend.dev>"`

	UseEmailReputation  bool   `env:"USE_EMAIL_REPUTATION" envDefault:"false"`
	AbstractEmailAPIKey string `env:"ABSTRACT_EMAIL_API_KEY"`

	MidtransServerKey string `env:"MIDTRANS_SERVER_KEY"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3BaseURL   string `env:"S3_BASE_URL"`
}

var loadEnvOnce sync.Once

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	loadEnvOnce.Do(func() {
		// missing .env is fine in production
		_ = godotenv.Load()
	})

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// PaymentsEnabled reports whether a Midtrans server key is configured.
func (c *Config) PaymentsEnabled() bool {
	return c.MidtransServerKey != ""
}

// AvatarsEnabled reports whether object storage is configured.
func (c *Config) AvatarsEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
