package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram
	TelegramToken string

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// TalentGraph API
	APIBaseURL string
	APITimeout time.Duration
	// WebURL is the TalentGraph web app, used for profile page links
	WebURL string

	// Bot settings
	CheckInterval time.Duration
	FormTTL       time.Duration
	MaxSkills     int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the environment, after merging an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		// Defaults
		APIBaseURL:    "http://localhost:8000/api",
		APITimeout:    15 * time.Second,
		WebURL:        "http://localhost:3000",
		CheckInterval: 5 * time.Minute,
		FormTTL:       2 * time.Hour,
		MaxSkills:     20,
		LogLevel:      "info",
		LogFormat:     "json",
		RedisAddr:     "localhost:6379",
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if baseURL := os.Getenv("TALENTGRAPH_API_URL"); baseURL != "" {
		cfg.APIBaseURL = baseURL
	}

	if webURL := os.Getenv("TALENTGRAPH_WEB_URL"); webURL != "" {
		cfg.WebURL = webURL
	}

	var err error
	if cfg.APITimeout, err = durationEnv("TALENTGRAPH_API_TIMEOUT", cfg.APITimeout); err != nil {
		return nil, err
	}
	if cfg.CheckInterval, err = durationEnv("CHECK_INTERVAL", cfg.CheckInterval); err != nil {
		return nil, err
	}
	if cfg.FormTTL, err = durationEnv("FORM_TTL", cfg.FormTTL); err != nil {
		return nil, err
	}

	if maxSkills := os.Getenv("MAX_SKILLS"); maxSkills != "" {
		n, err := strconv.Atoi(maxSkills)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_SKILLS: %w", err)
		}
		cfg.MaxSkills = n
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		cfg.LogFormat = logFormat
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// ProfileURL is the web page where resumes, certifications and skills are managed.
func (c *Config) ProfileURL() string {
	return c.WebURL + "/candidate/profile"
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("telegram token is empty")
	}

	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	for name, raw := range map[string]string{"api url": c.APIBaseURL, "web url": c.WebURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %q", name, raw)
		}
	}

	if c.CheckInterval < time.Minute {
		return fmt.Errorf("check interval too small: %v", c.CheckInterval)
	}

	if c.FormTTL < 10*time.Minute {
		return fmt.Errorf("form ttl too small: %v", c.FormTTL)
	}

	if c.MaxSkills < 1 || c.MaxSkills > 50 {
		return fmt.Errorf("max skills must be between 1 and 50")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}

	return nil
}
