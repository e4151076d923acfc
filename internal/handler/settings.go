// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/model"
)

// settingRequest is the write payload for a site setting.
type settingRequest struct {
	Value any    `json:"value"`
	Type  string `json:"type"`
}

// SettingResponse is the API shape of a site setting. Value carries the
// coerced typed value, not the stored string.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     any       `json:"value"`
	Type      string    `json:"type"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func settingToResponse(s model.SiteSetting) SettingResponse {
	value, err := s.TypedValue()
	if err != nil {
		// A corrupt stored value degrades to the raw string.
		slog.Warn("setting value does not match its declared type", "key", s.Key, "error", err)
		value = s.Value
	}
	return SettingResponse{
		Key:       s.Key,
		Value:     value,
		Type:      s.Type,
		UpdatedAt: s.UpdatedAt,
	}
}

// ListSettings returns all site settings with typed values.
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.queries.ListSettings(r.Context())
	if err != nil {
		slog.Error("listing settings", "error", err)
		WriteInternalError(w, r)
		return
	}

	responses := make([]SettingResponse, 0, len(settings))
	for _, s := range settings {
		responses = append(responses, settingToResponse(s))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// UpdateSetting writes a site setting by key. The typed value round-trips
// through its string encoding so reads always coerce cleanly.
func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req settingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}

	if !model.IsValidSettingType(req.Type) {
		WriteValidationError(w, r, map[string]string{
			"type": "must be one of: " + strings.Join(model.ValidSettingTypes(), ", "),
		})
		return
	}

	encoded, err := model.EncodeSettingValue(req.Value, req.Type)
	if err != nil {
		WriteValidationError(w, r, map[string]string{"value": err.Error()})
		return
	}

	var oldData any
	if old, getErr := h.queries.GetSetting(r.Context(), key); getErr == nil {
		oldData = settingToResponse(old)
	}

	setting, err := h.queries.UpsertSetting(r.Context(), key, encoded, req.Type)
	if err != nil {
		slog.Error("writing setting", "error", err, "key", key)
		WriteInternalError(w, r)
		return
	}

	action := model.AuditActionUpdate
	if oldData == nil {
		action = model.AuditActionCreate
	}
	h.audit.Record(r, auditEntry(middleware.GetUserID(r), action, model.AuditEntitySetting, setting.ID,
		oldData, settingToResponse(setting)))

	WriteJSON(w, http.StatusOK, settingToResponse(setting))
}
