package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/AshokAssist/OnlineBanner/internal/domains/notifications/adapters/smtp"
	userpostgres "github.com/AshokAssist/OnlineBanner/internal/domains/users/adapters/persistence/postgres"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SMTPServer        string
	SMTPPort          int
	BusinessEmail     string
	EmailPassword     string
	NotifyTimeout     time.Duration
	SessionTTL        time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SMTPServer:        strings.TrimSpace(os.Getenv("SMTP_SERVER")),
		SMTPPort:          587,
		BusinessEmail:     strings.TrimSpace(os.Getenv("BUSINESS_EMAIL")),
		EmailPassword:     os.Getenv("EMAIL_PASSWORD"),
		NotifyTimeout:     smtp.DefaultSendTimeout,
		SessionTTL:        userpostgres.DefaultSessionTTL,
	}
	if raw := strings.TrimSpace(os.Getenv("SMTP_PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("SMTP_PORT must be a positive integer")
		}
		cfg.SMTPPort = port
	}
	if raw := strings.TrimSpace(os.Getenv("NOTIFY_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("NOTIFY_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.NotifyTimeout = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer")
		}
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	return cfg, nil
}

// MailConfigured reports whether the SMTP relay settings are complete enough to send.
func (c Config) MailConfigured() bool {
	return c.SMTPServer != "" && c.BusinessEmail != ""
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
