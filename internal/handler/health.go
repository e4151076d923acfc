// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/tdasolutions/sitecms/internal/version"
)

// Health reports service liveness and database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":   "degraded",
			"version":  version.Version,
			"database": "unreachable",
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  version.Version,
		"database": "ok",
	})
}
