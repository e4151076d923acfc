// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Service is a consultancy service shown on the marketing site.
type Service struct {
	ID          string
	Title       string
	Description string
	Icon        sql.NullString
	SortOrder   int64
	IsActive    bool
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Project is a portfolio entry.
type Project struct {
	ID          string
	Title       string
	Description string
	ImageURL    sql.NullString
	ProjectURL  sql.NullString
	SortOrder   int64
	IsActive    bool
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamMember is a team profile shown on the about section.
type TeamMember struct {
	ID        string
	Name      string
	Role      string
	Bio       sql.NullString
	PhotoURL  sql.NullString
	SortOrder int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
