package common

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	Env           string `env:"APP_ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	Domain        string `env:"DOMAIN" envDefault:"http://localhost:8080"`
	SessionSecret string `env:"SESSION_SECRET,required"`
	DBPath        string `env:"SQLITE_DB" envDefault:"./data/portfolio.db"`

	// SMTP settings for the contact flow.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
	OwnerEmail   string `env:"OWNER_EMAIL"` // contact notifications go here

	ResumeURL string `env:"RESUME_URL" envDefault:"/public/resume.pdf"`

	// Seed credentials for the initial admin account. Only applied when
	// the users table is empty.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Site Owner"`

	CacheTTLSeconds int `env:"CACHE_TTL" envDefault:"300"`
}

// LoadConfig reads .env when present, then parses the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true when running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
