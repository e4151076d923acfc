// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
	"github.com/tdasolutions/sitecms/internal/util"
)

// pageRequest is the create/update payload for a page.
type pageRequest struct {
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Content         json.RawMessage `json:"content"`
	MetaTitle       string          `json:"metaTitle"`
	MetaDescription string          `json:"metaDescription"`
	IsPublished     bool            `json:"isPublished"`
}

// PageResponse is the API shape of a page.
type PageResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Content         json.RawMessage `json:"content"`
	MetaTitle       string          `json:"metaTitle,omitempty"`
	MetaDescription string          `json:"metaDescription,omitempty"`
	IsPublished     bool            `json:"isPublished"`
	CreatedBy       string          `json:"createdBy,omitempty"`
	UpdatedBy       string          `json:"updatedBy,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func pageToResponse(p model.Page) PageResponse {
	return PageResponse{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         json.RawMessage(p.Content),
		MetaTitle:       p.MetaTitle.String,
		MetaDescription: p.MetaDescription.String,
		IsPublished:     p.IsPublished,
		CreatedBy:       p.CreatedBy,
		UpdatedBy:       p.UpdatedBy.String,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// validatePageRequest checks required fields and resolves the slug.
func validatePageRequest(req *pageRequest) map[string]string {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "required"
	}
	if len(req.Content) == 0 || !json.Valid(req.Content) {
		fieldErrors["content"] = "must be a JSON document"
	}

	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "must contain only lowercase letters, numbers, and hyphens"
	}
	return fieldErrors
}

// ListPages returns all pages for the admin view.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListPages(r.Context())
	if err != nil {
		slog.Error("listing pages", "error", err)
		WriteInternalError(w, r)
		return
	}

	responses := make([]PageResponse, 0, len(pages))
	for _, p := range pages {
		responses = append(responses, pageToResponse(p))
	}
	WriteJSON(w, http.StatusOK, responses)
}

// GetPage returns a page by ID for the admin view.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.queries.GetPageByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading page", "error", err)
		WriteInternalError(w, r)
		return
	}
	WriteJSON(w, http.StatusOK, pageToResponse(page))
}

// GetPublishedPage returns a published page by slug for the public site.
// Unpublished pages are indistinguishable from missing ones.
func (h *Handler) GetPublishedPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.queries.GetPageBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading page by slug", "error", err)
		WriteInternalError(w, r)
		return
	}
	if !page.IsPublished {
		WriteNotFound(w, r)
		return
	}
	WriteJSON(w, http.StatusOK, pageToResponse(page))
}

// CreatePage creates a page. The slug is derived from the title when absent
// and must be unique.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if fieldErrors := validatePageRequest(&req); len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	count, err := h.queries.CountPagesBySlug(r.Context(), req.Slug)
	if err != nil {
		slog.Error("checking slug", "error", err)
		WriteInternalError(w, r)
		return
	}
	if count > 0 {
		WriteValidationError(w, r, map[string]string{"slug": "already in use"})
		return
	}

	userID := middleware.GetUserID(r)
	page, err := h.queries.CreatePage(r.Context(), store.CreatePageParams{
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         string(req.Content),
		MetaTitle:       nullString(req.MetaTitle),
		MetaDescription: nullString(req.MetaDescription),
		IsPublished:     req.IsPublished,
		CreatedBy:       userID,
	})
	if err != nil {
		slog.Error("creating page", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(userID, model.AuditActionCreate, model.AuditEntityPage, page.ID, nil, pageToResponse(page)))

	WriteJSON(w, http.StatusCreated, pageToResponse(page))
}

// UpdatePage applies a full update to a page.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	old, err := h.queries.GetPageByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading page", "error", err)
		WriteInternalError(w, r)
		return
	}

	var req pageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if fieldErrors := validatePageRequest(&req); len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	if req.Slug != old.Slug {
		count, err := h.queries.CountPagesBySlug(r.Context(), req.Slug)
		if err != nil {
			slog.Error("checking slug", "error", err)
			WriteInternalError(w, r)
			return
		}
		if count > 0 {
			WriteValidationError(w, r, map[string]string{"slug": "already in use"})
			return
		}
	}

	userID := middleware.GetUserID(r)
	page, err := h.queries.UpdatePage(r.Context(), store.UpdatePageParams{
		ID:              id,
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         string(req.Content),
		MetaTitle:       nullString(req.MetaTitle),
		MetaDescription: nullString(req.MetaDescription),
		IsPublished:     req.IsPublished,
		UpdatedBy:       userID,
	})
	if err != nil {
		slog.Error("updating page", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(userID, model.AuditActionUpdate, model.AuditEntityPage, page.ID,
		pageToResponse(old), pageToResponse(page)))

	WriteJSON(w, http.StatusOK, pageToResponse(page))
}

// DeletePage removes a page.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	old, err := h.queries.GetPageByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("loading page", "error", err)
		WriteInternalError(w, r)
		return
	}

	if err := h.queries.DeletePage(r.Context(), id); err != nil {
		if isNotFound(err) {
			WriteNotFound(w, r)
			return
		}
		slog.Error("deleting page", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(middleware.GetUserID(r), model.AuditActionDelete, model.AuditEntityPage, id,
		pageToResponse(old), nil))

	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
