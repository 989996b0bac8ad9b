package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("INBOX_EMAIL", "support@acme.io")
	t.Setenv("INBOX_PASSWORD", "secret")
	t.Setenv("SMTP_HOST", "smtp.acme.io")
	t.Setenv("ESCALATION_EMAIL", "humans@acme.io")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "support@acme.io", cfg.InboxEmail)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.Equal(t, 500, cfg.MaxTokens)
	assert.Equal(t, "info", cfg.LogLevel)

	// FROM_ADDRESS falls back to the inbox address
	assert.Equal(t, "support@acme.io", cfg.FromAddress)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	// t.Setenv registers the restore; unset to simulate a missing variable
	os.Unsetenv("INBOX_EMAIL")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadTemperature(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMPLETION_TEMPERATURE", "3.5")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsTinyPollInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POLL_INTERVAL", "1s")

	_, err := Load()
	assert.Error(t, err)
}
