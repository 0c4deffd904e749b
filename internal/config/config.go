// Package config loads process configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-configured setting. Collaborator credentials
// are optional; leaving one empty disables that collaborator instead of
// failing startup.
type Config struct {
	Addr        string `env:"ADDR" envDefault:":8080"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	RedisURL    string `env:"REDIS_URL"`

	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	ExchangeRateToken string `env:"EXCHANGE_RATE_API_TOKEN"`
	YandexAPIKey      string `env:"YANDEX_TRANSLATE_API_KEY"`
	YandexFolderID    string `env:"YANDEX_FOLDER_ID"`

	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	MailFrom       string `env:"MAIL_FROM" envDefault:"no-reply@localhost"`

	OIDCIssuer       string `env:"OIDC_ISSUER"`
	OIDCClientID     string `env:"OIDC_CLIENT_ID"`
	OIDCClientSecret string `env:"OIDC_CLIENT_SECRET"`
	OIDCRedirectURL  string `env:"OIDC_REDIRECT_URL"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// SSOConfigured reports whether every OIDC setting is present.
func (c *Config) SSOConfigured() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != "" && c.OIDCClientSecret != "" && c.OIDCRedirectURL != ""
}
