package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"storefront"`

	JWTSecret       string `env:"JWT_SECRET,required"`
	GoogleClientID  string `env:"GOOGLE_CLIENT_ID"`
	AdminSetupToken string `env:"ADMIN_SETUP_TOKEN"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	PayPalClientID string `env:"PAYPAL_CLIENT_ID"`
	PayPalSecret   string `env:"PAYPAL_CLIENT_SECRET"`
	PayPalAPIBase  string `env:"PAYPAL_API_BASE" envDefault:"https://api-m.sandbox.paypal.com"`

	RenderDeployHookURL string `env:"RENDER_DEPLOY_HOOK_URL"`

	VAPIDPublicKey  string `env:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `env:"VAPID_PRIVATE_KEY"`
	VAPIDSubject    string `env:"VAPID_SUBJECT" envDefault:"mailto:contact@evacurves.com"`
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
