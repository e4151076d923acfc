// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

// Package audit provides the append-only audit trail written on every
// mutating admin operation. Appends are fire-and-forget: failures are
// logged server-side and never surfaced to the caller, and no transaction
// couples the audit row to the primary mutation.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
)

// Logger appends audit records.
type Logger struct {
	queries *store.Queries
}

// NewLogger creates a Logger over the given database.
func NewLogger(db *sql.DB) *Logger {
	return &Logger{queries: store.New(db)}
}

// Entry describes a single audit record to append.
type Entry struct {
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	OldData    any
	NewData    any
}

// Record appends an audit row. It uses a background context so the row is
// written even when the request context has been cancelled, and it never
// returns an error: a failed insert is logged and otherwise ignored.
func (l *Logger) Record(r *http.Request, e Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := l.queries.CreateAuditLog(ctx, store.CreateAuditLogParams{
		UserID:     nullString(e.UserID),
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   nullString(e.EntityID),
		OldData:    nullJSON(e.OldData),
		NewData:    nullJSON(e.NewData),
		IPAddress:  nullString(clientIP(r)),
		UserAgent:  nullString(userAgent(r)),
	})
	if err != nil {
		slog.Error("audit log insert failed",
			"error", err,
			"action", e.Action,
			"entity_type", e.EntityType,
			"entity_id", e.EntityID,
		)
	}
}

// RecordLogin appends a login audit row for the user.
func (l *Logger) RecordLogin(r *http.Request, userID string) {
	l.Record(r, Entry{
		UserID:     userID,
		Action:     model.AuditActionLogin,
		EntityType: model.AuditEntityUser,
		EntityID:   userID,
	})
}

// Purge removes audit rows older than the retention period.
func (l *Logger) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	return l.queries.PurgeAuditLogsBefore(ctx, time.Now().UTC().Add(-retention))
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullJSON marshals a snapshot value to JSON. Marshal failures degrade to
// an absent snapshot rather than blocking the audit row.
func nullJSON(v any) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		slog.Error("audit snapshot encoding failed", "error", err)
		return sql.NullString{}
	}
	return sql.NullString{String: string(encoded), Valid: true}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func userAgent(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Header.Get("User-Agent")
}
