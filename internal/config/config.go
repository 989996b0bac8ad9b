package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config application configuration
type Config struct {
	// Inbox (IMAP)
	InboxEmail      string        `env:"INBOX_EMAIL,required"`
	InboxPassword   string        `env:"INBOX_PASSWORD,required"`
	IMAPServer      string        `env:"IMAP_SERVER"` // host:port; resolved from INBOX_EMAIL when empty
	IMAPDialTimeout time.Duration `env:"IMAP_DIAL_TIMEOUT" envDefault:"30s"`
	PollInterval    time.Duration `env:"POLL_INTERVAL" envDefault:"1m"`

	// Outbound (SMTP)
	SMTPHost     string `env:"SMTP_HOST,required"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	FromAddress  string `env:"FROM_ADDRESS"` // defaults to INBOX_EMAIL
	FromName     string `env:"FROM_NAME" envDefault:"Support"`

	// Escalation
	EscalationEmail string `env:"ESCALATION_EMAIL,required"`

	// Completion service
	OpenAIAPIKey  string  `env:"OPENAI_API_KEY,required"`
	OpenAIModel   string  `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string  `env:"OPENAI_BASE_URL"` // for OpenAI-compatible endpoints
	Temperature   float64 `env:"COMPLETION_TEMPERATURE" envDefault:"0.7"`
	MaxTokens     int     `env:"COMPLETION_MAX_TOKENS" envDefault:"500"`

	// Identity used in generated replies
	CompanyName string `env:"COMPANY_NAME" envDefault:"our team"`
	AgentName   string `env:"AGENT_NAME" envDefault:"The Support Team"`

	// Database
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/replyflow.db"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.FromAddress == "" {
		cfg.FromAddress = cfg.InboxEmail
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return nil, fmt.Errorf("COMPLETION_TEMPERATURE must be between 0 and 2, got %v", cfg.Temperature)
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("COMPLETION_MAX_TOKENS must be positive, got %d", cfg.MaxTokens)
	}
	if cfg.PollInterval < 10*time.Second {
		return nil, fmt.Errorf("POLL_INTERVAL must be at least 10s, got %v", cfg.PollInterval)
	}

	return cfg, nil
}
