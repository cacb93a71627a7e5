package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/talentgraph")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 20, cfg.MaxSkills)
	assert.Equal(t, "http://localhost:3000/candidate/profile", cfg.ProfileURL())
	assert.NoError(t, cfg.Validate())
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/talentgraph")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/talentgraph")
	t.Setenv("TALENTGRAPH_API_URL", "https://api.talentgraph.test")
	t.Setenv("FORM_TTL", "1h")
	t.Setenv("MAX_SKILLS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.talentgraph.test", cfg.APIBaseURL)
	assert.Equal(t, time.Hour, cfg.FormTTL)
	assert.Equal(t, 8, cfg.MaxSkills)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/talentgraph")
	t.Setenv("CHECK_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{
		TelegramToken: "t",
		PostgresDSN:   "dsn",
		APIBaseURL:    "https://api.example.com",
		WebURL:        "https://app.example.com",
		CheckInterval: time.Minute,
		FormTTL:       time.Hour,
		MaxSkills:     20,
		LogLevel:      "info",
		LogFormat:     "json",
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.LogLevel = "verbose"
	assert.Error(t, bad.Validate())

	bad = base
	bad.APIBaseURL = "not a url"
	assert.Error(t, bad.Validate())

	bad = base
	bad.CheckInterval = 10 * time.Second
	assert.Error(t, bad.Validate())
}
