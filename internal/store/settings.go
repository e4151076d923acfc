// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tdasolutions/sitecms/internal/model"
)

// GetSetting returns a site setting by its unique key.
func (q *Queries) GetSetting(ctx context.Context, key string) (model.SiteSetting, error) {
	var s model.SiteSetting
	err := q.db.QueryRowContext(ctx,
		`SELECT id, key, value, type, updated_at FROM site_settings WHERE key = ?`, key).
		Scan(&s.ID, &s.Key, &s.Value, &s.Type, &s.UpdatedAt)
	return s, err
}

// ListSettings returns all site settings ordered by key.
func (q *Queries) ListSettings(ctx context.Context) ([]model.SiteSetting, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, key, value, type, updated_at FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var settings []model.SiteSetting
	for rows.Next() {
		var s model.SiteSetting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.Type, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// UpsertSetting writes a site setting, inserting or updating on key conflict.
func (q *Queries) UpsertSetting(ctx context.Context, key, value, settingType string) (model.SiteSetting, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO site_settings (id, key, value, type, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, type = excluded.type, updated_at = excluded.updated_at`,
		uuid.NewString(), key, value, settingType, time.Now().UTC())
	if err != nil {
		return model.SiteSetting{}, err
	}
	return q.GetSetting(ctx, key)
}
