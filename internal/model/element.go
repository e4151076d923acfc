// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Website element types.
const (
	ElementTypeText     = "text"
	ElementTypeTextarea = "textarea"
	ElementTypeImage    = "image"
	ElementTypeLink     = "link"
	ElementTypeHTML     = "html"
)

// ValidElementTypes returns all valid website element types.
func ValidElementTypes() []string {
	return []string{
		ElementTypeText,
		ElementTypeTextarea,
		ElementTypeImage,
		ElementTypeLink,
		ElementTypeHTML,
	}
}

// IsValidElementType checks if an element type is valid.
func IsValidElementType(t string) bool {
	for _, v := range ValidElementTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// WebsiteElement is a single named, independently editable content fragment
// keyed by a stable identifier and edited in place from the inline editor.
type WebsiteElement struct {
	ID          string
	ElementKey  string
	ElementType string
	Value       string
	Description sql.NullString
	Category    string
	IsActive    bool
	UpdatedAt   time.Time
}
