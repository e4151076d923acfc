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

// CreateContactParams holds parameters for CreateContact.
type CreateContactParams struct {
	FullName    string
	Email       string
	Phone       sql.NullString
	ProjectType sql.NullString
	Details     string
}

// CreateContact inserts a contact-form submission and returns the row.
func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (model.Contact, error) {
	c := model.Contact{
		ID:          uuid.NewString(),
		FullName:    arg.FullName,
		Email:       arg.Email,
		Phone:       arg.Phone,
		ProjectType: arg.ProjectType,
		Details:     arg.Details,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO contacts (id, full_name, email, phone, project_type, details, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FullName, c.Email, c.Phone, c.ProjectType, c.Details, c.CreatedAt)
	if err != nil {
		return model.Contact{}, err
	}
	return c, nil
}

// ListContacts returns all contacts, newest first.
func (q *Queries) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, full_name, email, phone, project_type, details, created_at FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.ProjectType, &c.Details, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// CreateFormSubmission records the generic submission envelope alongside a
// form entry. Data must be a JSON-encoded payload.
func (q *Queries) CreateFormSubmission(ctx context.Context, formType, data string) (model.FormSubmission, error) {
	s := model.FormSubmission{
		ID:        uuid.NewString(),
		FormType:  formType,
		Data:      data,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO form_submissions (id, form_type, data, is_read, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.FormType, s.Data, s.IsRead, s.CreatedAt)
	if err != nil {
		return model.FormSubmission{}, err
	}
	return s, nil
}

// ListFormSubmissions returns all form submissions, newest first.
func (q *Queries) ListFormSubmissions(ctx context.Context) ([]model.FormSubmission, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, form_type, data, is_read, created_at FROM form_submissions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var subs []model.FormSubmission
	for rows.Next() {
		var s model.FormSubmission
		if err := rows.Scan(&s.ID, &s.FormType, &s.Data, &s.IsRead, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// GetFormSubmissionByID returns a form submission by ID.
func (q *Queries) GetFormSubmissionByID(ctx context.Context, id string) (model.FormSubmission, error) {
	var s model.FormSubmission
	err := q.db.QueryRowContext(ctx,
		`SELECT id, form_type, data, is_read, created_at FROM form_submissions WHERE id = ?`, id).
		Scan(&s.ID, &s.FormType, &s.Data, &s.IsRead, &s.CreatedAt)
	return s, err
}

// MarkFormSubmissionRead flips the read flag on a submission.
func (q *Queries) MarkFormSubmissionRead(ctx context.Context, id string, isRead bool) error {
	res, err := q.db.ExecContext(ctx, `UPDATE form_submissions SET is_read = ? WHERE id = ?`, isRead, id)
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
