// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Page represents a CMS page with structured block content.
type Page struct {
	ID              string
	Title           string
	Slug            string
	Content         string // JSON array of content blocks
	MetaTitle       sql.NullString
	MetaDescription sql.NullString
	IsPublished     bool
	CreatedBy       string
	UpdatedBy       sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
