// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tdasolutions/sitecms/internal/model"
)

const elementColumns = `id, element_key, element_type, value, description, category, is_active, updated_at`

func scanElement(row interface{ Scan(...any) error }) (model.WebsiteElement, error) {
	var e model.WebsiteElement
	err := row.Scan(&e.ID, &e.ElementKey, &e.ElementType, &e.Value, &e.Description,
		&e.Category, &e.IsActive, &e.UpdatedAt)
	return e, err
}

// GetElementByKey returns a website element by its stable key.
func (q *Queries) GetElementByKey(ctx context.Context, key string) (model.WebsiteElement, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+elementColumns+` FROM website_elements WHERE element_key = ?`, key)
	return scanElement(row)
}

// ListElements returns all website elements ordered by category then key.
func (q *Queries) ListElements(ctx context.Context) ([]model.WebsiteElement, error) {
	return q.listElements(ctx, `SELECT `+elementColumns+` FROM website_elements ORDER BY category, element_key`)
}

// ListActiveElements returns active website elements only, for the public site.
func (q *Queries) ListActiveElements(ctx context.Context) ([]model.WebsiteElement, error) {
	return q.listElements(ctx, `SELECT `+elementColumns+` FROM website_elements WHERE is_active = 1 ORDER BY category, element_key`)
}

func (q *Queries) listElements(ctx context.Context, query string) ([]model.WebsiteElement, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var elements []model.WebsiteElement
	for rows.Next() {
		e, err := scanElement(rows)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return elements, rows.Err()
}

// UpsertElementParams holds parameters for UpsertElement.
type UpsertElementParams struct {
	ElementKey  string
	ElementType string
	Value       string
	Description sql.NullString
	Category    string
	IsActive    bool
}

// UpsertElement inserts a website element or updates it in place when the
// key already exists.
func (q *Queries) UpsertElement(ctx context.Context, arg UpsertElementParams) (model.WebsiteElement, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO website_elements (`+elementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(element_key) DO UPDATE SET
		   element_type = excluded.element_type,
		   value = excluded.value,
		   description = excluded.description,
		   category = excluded.category,
		   is_active = excluded.is_active,
		   updated_at = excluded.updated_at`,
		uuid.NewString(), arg.ElementKey, arg.ElementType, arg.Value, arg.Description,
		arg.Category, arg.IsActive, time.Now().UTC())
	if err != nil {
		return model.WebsiteElement{}, err
	}
	return q.GetElementByKey(ctx, arg.ElementKey)
}

// CountElements returns the total number of website elements.
func (q *Queries) CountElements(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM website_elements`).Scan(&count)
	return count, err
}
