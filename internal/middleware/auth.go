// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tdasolutions/sitecms/internal/auth"
	"github.com/tdasolutions/sitecms/internal/i18n"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key for the authenticated identity.
const ContextKeyUser ContextKey = "user"

// AuthCookieName is the cookie carrying the signed credential.
const AuthCookieName = "auth_token"

// apiError is the JSON error envelope written by middleware failures.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeAuthError writes a localized JSON error response.
func writeAuthError(w http.ResponseWriter, r *http.Request, statusCode int, code, messageKey string) {
	lang := i18n.MatchLanguage(r.Header.Get("Accept-Language"))

	var apiErr apiError
	apiErr.Error.Code = code
	apiErr.Error.Message = i18n.T(lang, messageKey)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(apiErr)
}

// extractToken pulls the raw credential from the auth cookie or the
// Authorization header. Cookie wins when both are present.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(AuthCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Authenticate creates middleware that requires a valid credential.
// The token's signature and expiry are verified, the referenced user is
// reloaded, and inactive or missing users are rejected. On success the
// identity projection is attached to the request context.
func Authenticate(db *sql.DB, secret []byte) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				writeAuthError(w, r, http.StatusUnauthorized, "unauthorized", "auth.required")
				return
			}

			claims, err := auth.VerifyToken(secret, tokenString)
			if err != nil {
				writeAuthError(w, r, http.StatusUnauthorized, "unauthorized", "auth.required")
				return
			}

			// Re-check against current user state: deactivation takes
			// effect at the next request, not mid-flight.
			user, err := queries.GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					slog.Error("loading user for auth", "error", err, "user_id", claims.Subject)
				}
				writeAuthError(w, r, http.StatusUnauthorized, "unauthorized", "auth.required")
				return
			}
			if !user.IsActive {
				writeAuthError(w, r, http.StatusUnauthorized, "unauthorized", "auth.required")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated identity from the request context.
// Returns nil if no identity is in context.
func GetIdentity(r *http.Request) *model.Identity {
	id, ok := r.Context().Value(ContextKeyUser).(model.Identity)
	if !ok {
		return nil
	}
	return &id
}

// GetUserID returns the authenticated user's ID, or empty string if absent.
func GetUserID(r *http.Request) string {
	if id := GetIdentity(r); id != nil {
		return id.ID
	}
	return ""
}

// roleLevel returns a numeric level for role hierarchy.
// Higher level = more permissions.
func roleLevel(role string) int {
	switch role {
	case model.RoleAdmin:
		return 3
	case model.RoleEditor:
		return 2
	case model.RoleViewer:
		return 1
	default:
		return 0
	}
}

// RequireRole creates middleware that requires a minimum user role.
// Roles are hierarchical: admin > editor > viewer. For example,
// RequireRole(model.RoleEditor) allows both admin and editor users.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetIdentity(r)
			if id == nil {
				writeAuthError(w, r, http.StatusUnauthorized, "unauthorized", "auth.required")
				return
			}

			if roleLevel(id.Role) < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", id.ID,
					"user_role", id.Role,
					"required_role", minRole,
					"remote_addr", r.RemoteAddr,
				)
				writeAuthError(w, r, http.StatusForbidden, "forbidden", "auth.forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin creates middleware that requires admin role.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}

// RequireEditor creates middleware that requires at least editor role.
// Allows both admin and editor users.
func RequireEditor() func(http.Handler) http.Handler {
	return RequireRole(model.RoleEditor)
}
