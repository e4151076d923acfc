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
	"github.com/tdasolutions/sitecms/internal/store"
)

// elementRequest is the upsert payload for a website element.
type elementRequest struct {
	ElementType string `json:"elementType"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"isActive"`
}

// ElementResponse is the API shape of a website element.
type ElementResponse struct {
	ID          string    `json:"id"`
	ElementKey  string    `json:"elementKey"`
	ElementType string    `json:"elementType"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"isActive"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func elementToResponse(e model.WebsiteElement) ElementResponse {
	return ElementResponse{
		ID:          e.ID,
		ElementKey:  e.ElementKey,
		ElementType: e.ElementType,
		Value:       e.Value,
		Description: e.Description.String,
		Category:    e.Category,
		IsActive:    e.IsActive,
		UpdatedAt:   e.UpdatedAt,
	}
}

func elementsToResponse(elements []model.WebsiteElement) []ElementResponse {
	responses := make([]ElementResponse, 0, len(elements))
	for _, e := range elements {
		responses = append(responses, elementToResponse(e))
	}
	return responses
}

// ListElements returns all website elements for the admin editor.
func (h *Handler) ListElements(w http.ResponseWriter, r *http.Request) {
	elements, err := h.queries.ListElements(r.Context())
	if err != nil {
		slog.Error("listing elements", "error", err)
		WriteInternalError(w, r)
		return
	}
	WriteJSON(w, http.StatusOK, elementsToResponse(elements))
}

// ListActiveElements returns active elements for the public site.
func (h *Handler) ListActiveElements(w http.ResponseWriter, r *http.Request) {
	elements, err := h.queries.ListActiveElements(r.Context())
	if err != nil {
		slog.Error("listing active elements", "error", err)
		WriteInternalError(w, r)
		return
	}
	WriteJSON(w, http.StatusOK, elementsToResponse(elements))
}

// UpsertElement writes a website element in place by its stable key.
// HTML-typed values are sanitized before storage.
func (h *Handler) UpsertElement(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req elementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}

	fieldErrors := map[string]string{}
	if !model.IsValidElementType(req.ElementType) {
		fieldErrors["elementType"] = "must be one of: " + strings.Join(model.ValidElementTypes(), ", ")
	}
	if req.Category == "" {
		fieldErrors["category"] = "required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	if req.ElementType == model.ElementTypeHTML {
		req.Value = h.sanitizer.Sanitize(req.Value)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var oldData any
	if old, err := h.queries.GetElementByKey(r.Context(), key); err == nil {
		oldData = elementToResponse(old)
	}

	element, err := h.queries.UpsertElement(r.Context(), store.UpsertElementParams{
		ElementKey:  key,
		ElementType: req.ElementType,
		Value:       req.Value,
		Description: nullString(req.Description),
		Category:    req.Category,
		IsActive:    isActive,
	})
	if err != nil {
		slog.Error("upserting element", "error", err, "key", key)
		WriteInternalError(w, r)
		return
	}

	action := model.AuditActionUpdate
	if oldData == nil {
		action = model.AuditActionCreate
	}
	h.audit.Record(r, auditEntry(middleware.GetUserID(r), action, model.AuditEntityElement, element.ID,
		oldData, elementToResponse(element)))

	WriteJSON(w, http.StatusOK, elementToResponse(element))
}
