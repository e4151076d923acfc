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

const pageColumns = `id, title, slug, content, meta_title, meta_description, is_published, created_by, updated_by, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }) (model.Page, error) {
	var p model.Page
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.MetaTitle, &p.MetaDescription,
		&p.IsPublished, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetPageByID returns a page by ID.
func (q *Queries) GetPageByID(ctx context.Context, id string) (model.Page, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	return scanPage(row)
}

// GetPageBySlug returns a page by its unique slug.
func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (model.Page, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE slug = ?`, slug)
	return scanPage(row)
}

// CountPagesBySlug returns how many pages use the given slug.
func (q *Queries) CountPagesBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages WHERE slug = ?`, slug).Scan(&count)
	return count, err
}

// CountPages returns the total number of pages.
func (q *Queries) CountPages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&count)
	return count, err
}

// ListPages returns all pages ordered by title.
func (q *Queries) ListPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+pageColumns+` FROM pages ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var pages []model.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// CreatePageParams holds parameters for CreatePage.
type CreatePageParams struct {
	Title           string
	Slug            string
	Content         string
	MetaTitle       sql.NullString
	MetaDescription sql.NullString
	IsPublished     bool
	CreatedBy       string
}

// CreatePage inserts a new page and returns the created row.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (model.Page, error) {
	now := time.Now().UTC()
	p := model.Page{
		ID:              uuid.NewString(),
		Title:           arg.Title,
		Slug:            arg.Slug,
		Content:         arg.Content,
		MetaTitle:       arg.MetaTitle,
		MetaDescription: arg.MetaDescription,
		IsPublished:     arg.IsPublished,
		CreatedBy:       arg.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO pages (`+pageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.Content, p.MetaTitle, p.MetaDescription,
		p.IsPublished, p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return model.Page{}, err
	}
	return p, nil
}

// UpdatePageParams holds parameters for UpdatePage.
type UpdatePageParams struct {
	ID              string
	Title           string
	Slug            string
	Content         string
	MetaTitle       sql.NullString
	MetaDescription sql.NullString
	IsPublished     bool
	UpdatedBy       string
}

// UpdatePage applies an update to a page and returns the updated row.
func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) (model.Page, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE pages SET title = ?, slug = ?, content = ?, meta_title = ?, meta_description = ?, is_published = ?, updated_by = ?, updated_at = ? WHERE id = ?`,
		arg.Title, arg.Slug, arg.Content, arg.MetaTitle, arg.MetaDescription,
		arg.IsPublished, arg.UpdatedBy, time.Now().UTC(), arg.ID)
	if err != nil {
		return model.Page{}, err
	}
	return q.GetPageByID(ctx, arg.ID)
}

// DeletePage removes a page.
func (q *Queries) DeletePage(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
