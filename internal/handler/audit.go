// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tdasolutions/sitecms/internal/model"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

// AuditLogResponse is the API shape of an audit record.
type AuditLogResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId,omitempty"`
	OldData    json.RawMessage `json:"oldData,omitempty"`
	NewData    json.RawMessage `json:"newData,omitempty"`
	IPAddress  string          `json:"ipAddress,omitempty"`
	UserAgent  string          `json:"userAgent,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func auditLogToResponse(a model.AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:         a.ID,
		UserID:     a.UserID.String,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID.String,
		IPAddress:  a.IPAddress.String,
		UserAgent:  a.UserAgent.String,
		CreatedAt:  a.CreatedAt,
	}
	if a.OldData.Valid {
		resp.OldData = json.RawMessage(a.OldData.String)
	}
	if a.NewData.Valid {
		resp.NewData = json.RawMessage(a.NewData.String)
	}
	return resp
}

// ListAuditLogs returns recent audit records, newest first. The limit query
// parameter caps the result set.
func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultAuditLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			WriteValidationError(w, r, map[string]string{"limit": "must be a positive integer"})
			return
		}
		if parsed > maxAuditLimit {
			parsed = maxAuditLimit
		}
		limit = parsed
	}

	logs, err := h.queries.ListAuditLogs(r.Context(), limit)
	if err != nil {
		slog.Error("listing audit logs", "error", err)
		WriteInternalError(w, r)
		return
	}

	responses := make([]AuditLogResponse, 0, len(logs))
	for _, a := range logs {
		responses = append(responses, auditLogToResponse(a))
	}
	WriteJSON(w, http.StatusOK, responses)
}
