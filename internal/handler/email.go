// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
)

// emailSettingsRequest is the write payload for the SMTP configuration.
// Password is optional; when empty the stored password is kept.
type emailSettingsRequest struct {
	SMTPHost     string `json:"smtpHost"`
	SMTPPort     int64  `json:"smtpPort"`
	SMTPUsername string `json:"smtpUsername"`
	SMTPPassword string `json:"smtpPassword"`
	SMTPSecure   bool   `json:"smtpSecure"`
	FromEmail    string `json:"fromEmail"`
	FromName     string `json:"fromName"`
}

// EmailSettingsResponse is the API shape of the SMTP configuration. The
// password never leaves the server.
type EmailSettingsResponse struct {
	ID           string    `json:"id"`
	Provider     string    `json:"provider"`
	SMTPHost     string    `json:"smtpHost"`
	SMTPPort     int64     `json:"smtpPort"`
	SMTPUsername string    `json:"smtpUsername"`
	SMTPSecure   bool      `json:"smtpSecure"`
	FromEmail    string    `json:"fromEmail"`
	FromName     string    `json:"fromName"`
	IsActive     bool      `json:"isActive"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func emailSettingsToResponse(e model.EmailSettings) EmailSettingsResponse {
	return EmailSettingsResponse{
		ID:           e.ID,
		Provider:     e.Provider,
		SMTPHost:     e.SMTPHost,
		SMTPPort:     e.SMTPPort,
		SMTPUsername: e.SMTPUsername,
		SMTPSecure:   e.SMTPSecure,
		FromEmail:    e.FromEmail,
		FromName:     e.FromName,
		IsActive:     e.IsActive,
		UpdatedAt:    e.UpdatedAt,
	}
}

// GetEmailSettings returns the active SMTP configuration.
func (h *Handler) GetEmailSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.queries.GetActiveEmailSettings(r.Context())
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading email settings", "error", err)
		WriteInternalError(w, r)
		return
	}
	WriteJSON(w, http.StatusOK, emailSettingsToResponse(settings))
}

// UpdateEmailSettings replaces the active SMTP configuration.
func (h *Handler) UpdateEmailSettings(w http.ResponseWriter, r *http.Request) {
	var req emailSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}

	fieldErrors := map[string]string{}
	if req.SMTPHost == "" {
		fieldErrors["smtpHost"] = "required"
	}
	if req.SMTPPort <= 0 || req.SMTPPort > 65535 {
		fieldErrors["smtpPort"] = "must be a valid port number"
	}
	if req.FromEmail == "" || !strings.Contains(req.FromEmail, "@") {
		fieldErrors["fromEmail"] = "a valid email is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	var oldData any
	old, err := h.queries.GetActiveEmailSettings(r.Context())
	if err == nil {
		oldData = emailSettingsToResponse(old)
		if req.SMTPPassword == "" {
			req.SMTPPassword = old.SMTPPassword
		}
	} else if !isNotFound(err) {
		slog.Error("loading email settings", "error", err)
		WriteInternalError(w, r)
		return
	}

	settings, err := h.queries.SaveEmailSettings(r.Context(), store.EmailSettingsParams{
		Provider:     model.EmailProviderSMTP,
		SMTPHost:     req.SMTPHost,
		SMTPPort:     req.SMTPPort,
		SMTPUsername: req.SMTPUsername,
		SMTPPassword: req.SMTPPassword,
		SMTPSecure:   req.SMTPSecure,
		FromEmail:    req.FromEmail,
		FromName:     req.FromName,
	})
	if err != nil {
		slog.Error("saving email settings", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionUpdate, model.AuditEntityEmailSettings,
		settings.ID, oldData, emailSettingsToResponse(settings)))

	WriteJSON(w, http.StatusOK, emailSettingsToResponse(settings))
}

// testEmailRequest carries the test destination address.
type testEmailRequest struct {
	TestEmail string `json:"testEmail"`
}

// TestEmail delivers a test message through the stored configuration and
// reports the classified failure when delivery does not go through.
func (h *Handler) TestEmail(w http.ResponseWriter, r *http.Request) {
	var req testEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if req.TestEmail == "" || !strings.Contains(req.TestEmail, "@") {
		WriteValidationError(w, r, map[string]string{"testEmail": "a valid email is required"})
		return
	}

	if sendErr := h.mailer.SendTest(r.Context(), req.TestEmail); sendErr != nil {
		slog.Error("test email failed", "error", sendErr, "class", sendErr.Class, "to", req.TestEmail)
		WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   string(sendErr.Class),
			"details": sendErr.Class.Detail(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Test email sent",
	})
}
