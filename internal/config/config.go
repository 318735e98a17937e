package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env            string        `envconfig:"APP_ENV" default:"development"`
	Port           string        `envconfig:"PORT" default:"8080"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	Timezone       string        `envconfig:"TIMEZONE" default:"UTC"`
	DBHost         string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort         string        `envconfig:"DB_PORT" default:"3306"`
	DBUser         string        `envconfig:"DB_USER" default:"fittrack"`
	DBPassword     string        `envconfig:"DB_PASSWORD" default:"fittrack_pass"`
	DBName         string        `envconfig:"DB_NAME" default:"fittrack"`
	JWTSecret      string        `envconfig:"JWT_SECRET"`
	AccessTTL      time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"168h"`
	RefreshTTL     time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"720h"`
	APIKey         string        `envconfig:"API_KEY"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	TrustedProxies []string      `envconfig:"TRUSTED_PROXIES"`
	SMTPHost       string        `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort       int           `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser       string        `envconfig:"SMTP_USER"`
	SMTPPass       string        `envconfig:"SMTP_PASS"`
	SMTPFrom       string        `envconfig:"SMTP_FROM"`
	OpenAIKey      string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel    string        `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	OpenAITimeout  time.Duration `envconfig:"OPENAI_TIMEOUT" default:"30s"`
	JanitorSpec    string        `envconfig:"JANITOR_SCHEDULE" default:"@hourly"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	if len(c.JWTSecret) < 16 && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters in production")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4&loc=UTC&clientFoundRows=true"
}
