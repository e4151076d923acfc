// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/store"
)

// InitPages creates the default page set. Existing pages are never touched;
// rerunning against a populated site is a no-op.
func (h *Handler) InitPages(w http.ResponseWriter, r *http.Request) {
	created, err := store.SeedPages(r.Context(), h.db, middleware.GetUserID(r))
	if err != nil {
		slog.Error("seeding pages", "error", err)
		WriteInternalError(w, r)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"pagesCreated": created,
	})
}

// InitCMS creates the default website elements and site settings. Keys that
// already exist keep their edited values.
func (h *Handler) InitCMS(w http.ResponseWriter, r *http.Request) {
	elements, settings, err := store.SeedCMSDefaults(r.Context(), h.db)
	if err != nil {
		slog.Error("seeding CMS defaults", "error", err)
		WriteInternalError(w, r)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"elementsCreated": elements,
		"settingsCreated": settings,
	})
}
