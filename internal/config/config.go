package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	DBPath   string `env:"NAPELE_DB_PATH"  envDefault:"usuarios.db"`
	SaveDir  string `env:"NAPELE_SAVE_DIR" envDefault:".saves"`
	Language string `env:"NAPELE_LANG"     envDefault:"pt-BR"`

	LogLevel  string `env:"NAPELE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"NAPELE_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"NAPELE_LOG_FILE"   envDefault:"napele.log"`

	CodeTTL          time.Duration `env:"NAPELE_CODE_TTL"           envDefault:"5m"`
	MaxLoginAttempts int           `env:"NAPELE_MAX_LOGIN_ATTEMPTS" envDefault:"3"`
	EmailDomains     []string      `env:"NAPELE_EMAIL_DOMAINS"      envDefault:"gmail.com,hotmail.com,ufrpe.br" envSeparator:","`

	SMTP SMTPConfig

	// GeminiAPIKey enables personalized reflections when set.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// SMTPConfig holds the credentials used to deliver verification codes.
type SMTPConfig struct {
	Sender   string `env:"EMAIL_SENDER"`
	Password string `env:"EMAIL_PASSWORD"`
	Server   string `env:"SMTP_SERVER"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SMTP.Sender == "" || c.SMTP.Password == "" || c.SMTP.Server == "" {
		return fmt.Errorf("EMAIL_SENDER, EMAIL_PASSWORD and SMTP_SERVER environment variables must be set")
	}
	if c.CodeTTL <= 0 {
		return fmt.Errorf("NAPELE_CODE_TTL must be positive, got %s", c.CodeTTL)
	}
	if c.MaxLoginAttempts < 1 {
		return fmt.Errorf("NAPELE_MAX_LOGIN_ATTEMPTS must be at least 1, got %d", c.MaxLoginAttempts)
	}
	domains := c.EmailDomains[:0]
	for _, d := range c.EmailDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			domains = append(domains, d)
		}
	}
	if len(domains) == 0 {
		return fmt.Errorf("NAPELE_EMAIL_DOMAINS must list at least one domain")
	}
	c.EmailDomains = domains
	return nil
}
