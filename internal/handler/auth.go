// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/tdasolutions/sitecms/internal/auth"
	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
)

// loginRequest is the login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is returned on successful login. The token is also set as
// an HTTP-only cookie; the body copy serves non-browser clients.
type loginResponse struct {
	Success bool           `json:"success"`
	User    model.Identity `json:"user"`
	Token   string         `json:"token"`
}

// Login authenticates a user and issues a signed credential.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if !h.login.CheckIPRateLimit(ip) {
		WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "auth.locked", nil)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteValidationError(w, r, map[string]string{"email": "required", "password": "required"})
		return
	}

	if locked, _ := h.login.IsAccountLocked(req.Email); locked {
		WriteError(w, r, http.StatusTooManyRequests, "account_locked", "auth.locked", nil)
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !isNotFound(err) {
			slog.Error("loading user for login", "error", err)
			WriteInternalError(w, r)
			return
		}
		h.failLogin(w, r, req.Email)
		return
	}
	if !user.IsActive {
		h.failLogin(w, r, req.Email)
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.failLogin(w, r, req.Email)
		return
	}

	h.login.RecordSuccessfulLogin(req.Email)

	identity := user.Identity()
	token, err := auth.GenerateToken([]byte(h.cfg.JWTSecret), identity)
	if err != nil {
		slog.Error("issuing token", "error", err)
		WriteInternalError(w, r)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenLifetime.Seconds()),
	})

	h.audit.RecordLogin(r, user.ID)

	WriteJSON(w, http.StatusOK, loginResponse{Success: true, User: identity, Token: token})
}

// failLogin records the failed attempt and answers with the uniform
// invalid-credentials response. Lockout kicks in silently at the threshold.
func (h *Handler) failLogin(w http.ResponseWriter, r *http.Request, email string) {
	if locked, _ := h.login.RecordFailedAttempt(email); locked {
		WriteError(w, r, http.StatusTooManyRequests, "account_locked", "auth.locked", nil)
		return
	}
	WriteError(w, r, http.StatusUnauthorized, "unauthorized", "auth.invalid_creds", nil)
}

// Logout clears the auth cookie. The token itself stays valid until expiry;
// stateless credentials cannot be revoked server-side.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// CurrentUser returns the authenticated identity.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r)
	if id == nil {
		WriteError(w, r, http.StatusUnauthorized, "unauthorized", "auth.required", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": id})
}

// setupRequest is the first-run admin bootstrap payload.
type setupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Setup creates the first admin account. It is unauthenticated but refuses
// to run once any admin exists.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, "error.validation", nil)
		return
	}

	fieldErrors := map[string]string{}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "a valid email is required"
	}
	if len(req.Password) < 8 {
		fieldErrors["password"] = "must be at least 8 characters"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, r, fieldErrors)
		return
	}

	count, err := h.queries.CountUsersByRole(r.Context(), model.RoleAdmin)
	if err != nil {
		slog.Error("checking for existing admin", "error", err)
		WriteInternalError(w, r)
		return
	}
	if count > 0 {
		WriteError(w, r, http.StatusBadRequest, "admin_exists", "setup.admin_exists", nil)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing setup password", "error", err)
		WriteInternalError(w, r)
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    nullString(req.FirstName),
		LastName:     nullString(req.LastName),
		Role:         model.RoleAdmin,
	})
	if err != nil {
		slog.Error("creating admin user", "error", err)
		WriteInternalError(w, r)
		return
	}

	h.audit.Record(r, auditEntry(user.ID, model.AuditActionCreate, model.AuditEntityUser, user.ID, nil, user.Identity()))

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Admin user created successfully",
		"userId":  user.ID,
	})
}

// clientIP extracts the requester address, preferring the proxy header.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
