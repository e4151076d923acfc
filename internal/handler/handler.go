// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the REST API handlers for the CMS backend.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tdasolutions/sitecms/internal/audit"
	"github.com/tdasolutions/sitecms/internal/config"
	"github.com/tdasolutions/sitecms/internal/i18n"
	"github.com/tdasolutions/sitecms/internal/mailer"
	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/store"
)

// maxBodySize caps JSON request bodies at 1 MB.
const maxBodySize = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	audit     *audit.Logger
	mailer    *mailer.Mailer
	login     *middleware.LoginProtection
	cfg       *config.Config
	sanitizer *bluemonday.Policy
}

// NewHandler creates the API handler with its dependencies.
func NewHandler(db *sql.DB, cfg *config.Config, m *mailer.Mailer, auditLogger *audit.Logger, login *middleware.LoginProtection) *Handler {
	return &Handler{
		db:        db,
		queries:   store.New(db),
		audit:     auditLogger,
		mailer:    m,
		login:     login,
		cfg:       cfg,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// ErrorResponse is the standard API error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a localized error response. messageKey is resolved
// against the request's Accept-Language header, Arabic first.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, code, messageKey string, details map[string]string) {
	lang := i18n.MatchLanguage(r.Header.Get("Accept-Language"))
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: i18n.T(lang, messageKey),
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, r *http.Request, messageKey string, details map[string]string) {
	WriteError(w, r, http.StatusBadRequest, "bad_request", messageKey, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, "not_found", "error.not_found", nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusInternalServerError, "internal_error", "error.internal", nil)
}

// WriteValidationError writes a 400 response with per-field errors.
func WriteValidationError(w http.ResponseWriter, r *http.Request, fieldErrors map[string]string) {
	WriteError(w, r, http.StatusBadRequest, "validation_error", "error.validation", fieldErrors)
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Reject trailing garbage after the JSON value.
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// nullString converts an optional field to its storage representation.
// Empty strings are stored as NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// isNotFound reports whether err means the row does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// auditEntry builds the audit record for a mutation.
func auditEntry(userID, action, entityType, entityID string, oldData, newData any) audit.Entry {
	return audit.Entry{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldData:    oldData,
		NewData:    newData,
	}
}
