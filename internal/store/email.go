// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tdasolutions/sitecms/internal/model"
)

const emailSettingsColumns = `id, provider, smtp_host, smtp_port, smtp_username, smtp_password, smtp_secure, from_email, from_name, is_active, updated_at`

func scanEmailSettings(row interface{ Scan(...any) error }) (model.EmailSettings, error) {
	var e model.EmailSettings
	err := row.Scan(&e.ID, &e.Provider, &e.SMTPHost, &e.SMTPPort, &e.SMTPUsername,
		&e.SMTPPassword, &e.SMTPSecure, &e.FromEmail, &e.FromName, &e.IsActive, &e.UpdatedAt)
	return e, err
}

// GetActiveEmailSettings returns the currently active email settings row.
// Exactly one row is expected active; the most recently updated wins.
func (q *Queries) GetActiveEmailSettings(ctx context.Context) (model.EmailSettings, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+emailSettingsColumns+` FROM email_settings WHERE is_active = 1 ORDER BY updated_at DESC LIMIT 1`)
	return scanEmailSettings(row)
}

// EmailSettingsParams holds fields for saving email settings.
type EmailSettingsParams struct {
	Provider     string
	SMTPHost     string
	SMTPPort     int64
	SMTPUsername string
	SMTPPassword string
	SMTPSecure   bool
	FromEmail    string
	FromName     string
}

// SaveEmailSettings deactivates any previous configuration and inserts the
// new one as the single active row.
func (q *Queries) SaveEmailSettings(ctx context.Context, arg EmailSettingsParams) (model.EmailSettings, error) {
	if _, err := q.db.ExecContext(ctx, `UPDATE email_settings SET is_active = 0 WHERE is_active = 1`); err != nil {
		return model.EmailSettings{}, err
	}

	e := model.EmailSettings{
		ID:           uuid.NewString(),
		Provider:     arg.Provider,
		SMTPHost:     arg.SMTPHost,
		SMTPPort:     arg.SMTPPort,
		SMTPUsername: arg.SMTPUsername,
		SMTPPassword: arg.SMTPPassword,
		SMTPSecure:   arg.SMTPSecure,
		FromEmail:    arg.FromEmail,
		FromName:     arg.FromName,
		IsActive:     true,
		UpdatedAt:    time.Now().UTC(),
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO email_settings (`+emailSettingsColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Provider, e.SMTPHost, e.SMTPPort, e.SMTPUsername, e.SMTPPassword,
		e.SMTPSecure, e.FromEmail, e.FromName, e.IsActive, e.UpdatedAt)
	if err != nil {
		return model.EmailSettings{}, err
	}
	return e, nil
}
