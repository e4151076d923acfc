// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// FormTypeContact is the form type recorded for contact submissions.
const FormTypeContact = "contact"

// Contact represents a public contact-form submission. Rows are immutable
// after creation and only read back by the admin listing.
type Contact struct {
	ID          string
	FullName    string
	Email       string
	Phone       sql.NullString
	ProjectType sql.NullString
	Details     string
	CreatedAt   time.Time
}

// FormSubmission is the generic envelope recorded alongside each form
// submission for CMS-wide reporting. Data carries the raw payload as JSON.
type FormSubmission struct {
	ID        string
	FormType  string
	Data      string // JSON payload
	IsRead    bool
	CreatedAt time.Time
}
