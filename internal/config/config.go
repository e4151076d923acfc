// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"your-super-secret-jwt-key-change-in-production",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SITECMS_DB_PATH" envDefault:"./data/sitecms.db"`
	JWTSecret  string `env:"SITECMS_JWT_SECRET,required"`
	ServerHost string `env:"SITECMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SITECMS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SITECMS_ENV" envDefault:"development"`
	LogLevel   string `env:"SITECMS_LOG_LEVEL" envDefault:"info"`

	// SMTP bootstrap values. Used to seed the email_settings row on first
	// boot; after that the database row is authoritative.
	SMTPHost     string `env:"SITECMS_SMTP_HOST"`
	SMTPPort     int    `env:"SITECMS_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SITECMS_SMTP_USERNAME"`
	SMTPPassword string `env:"SITECMS_SMTP_PASSWORD"`
	SMTPSecure   bool   `env:"SITECMS_SMTP_SECURE" envDefault:"false"`
	FromEmail    string `env:"SITECMS_FROM_EMAIL"`
	FromName     string `env:"SITECMS_FROM_NAME" envDefault:"TDA Solutions"`

	// ContactRecipient receives contact-form notification email.
	ContactRecipient string `env:"SITECMS_CONTACT_RECIPIENT"`

	// AuditRetentionDays controls the nightly audit purge cutoff.
	AuditRetentionDays int `env:"SITECMS_AUDIT_RETENTION_DAYS" envDefault:"180"`

	// Seeding configuration
	DoSeed bool `env:"SITECMS_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SMTPConfigured returns true if bootstrap SMTP values are present.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.FromEmail != ""
}

// MinJWTSecretLength is the minimum required length for the signing secret.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("SITECMS_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("SITECMS_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	return cfg, nil
}
