// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	w := env.request(http.MethodPost, "/auth/login",
		`{"email":"admin@example.com","password":"password123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("success = false")
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Error("missing token in body")
	}
	identity, _ := body["user"].(map[string]any)
	if identity["email"] != user.Email || identity["role"] != model.RoleAdmin {
		t.Errorf("user = %v", identity)
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AuthCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("auth cookie not set")
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("cookie flags = HttpOnly:%v SameSite:%v", cookie.HttpOnly, cookie.SameSite)
	}
	if cookie.Value != token {
		t.Error("cookie token differs from body token")
	}

	// The login itself is audited.
	logs, err := env.queries.ListAuditLogs(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListAuditLogs: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != model.AuditActionLogin {
		t.Errorf("audit trail = %+v", logs)
	}

	// The issued token works against the authenticated surface.
	w = env.request(http.MethodGet, "/auth/user", "", token)
	if w.Code != http.StatusOK {
		t.Errorf("GET /auth/user with fresh token = %d", w.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"admin@example.com","password":"wrong-password"}`},
		{"unknown email", `{"email":"ghost@example.com","password":"password123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(http.MethodPost, "/auth/login", tt.body, "")
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			body := decodeBody(t, w)
			errDetail, _ := body["error"].(map[string]any)
			if errDetail["code"] != "unauthorized" {
				t.Errorf("code = %v", errDetail["code"])
			}
		})
	}
}

func TestLoginInactiveUser(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser(model.RoleEditor, "editor@example.com", "password123")

	if _, err := env.queries.UpdateUser(context.Background(), store.UpdateUserParams{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: false,
	}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	w := env.request(http.MethodPost, "/auth/login",
		`{"email":"editor@example.com","password":"password123"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for deactivated account", w.Code)
	}
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/auth/login", `{"email":"","password":""}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty credentials = %d, want 400", w.Code)
	}

	w = env.request(http.MethodPost, "/auth/login", `not json`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body = %d, want 400", w.Code)
	}
}

func TestLoginLockout(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	bad := `{"email":"admin@example.com","password":"wrong-password"}`
	for i := 0; i < 2; i++ {
		if w := env.request(http.MethodPost, "/auth/login", bad, ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d = %d, want 401", i+1, w.Code)
		}
	}

	// Third failure trips the lockout.
	w := env.request(http.MethodPost, "/auth/login", bad, "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third failure = %d, want 429", w.Code)
	}

	// The correct password is refused while locked.
	w = env.request(http.MethodPost, "/auth/login",
		`{"email":"admin@example.com","password":"password123"}`, "")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("login while locked = %d, want 429", w.Code)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/auth/logout", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AuthCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("clearing cookie not set")
	}
	if cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Errorf("cookie not cleared: MaxAge=%d Value=%q", cookie.MaxAge, cookie.Value)
	}
}

func TestCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(model.RoleEditor, "editor@example.com", "password123")

	w := env.request(http.MethodGet, "/auth/user", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	identity, _ := body["user"].(map[string]any)
	if identity["id"] != user.ID || identity["role"] != model.RoleEditor {
		t.Errorf("user = %v", identity)
	}

	if w := env.request(http.MethodGet, "/auth/user", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("without token = %d, want 401", w.Code)
	}
}

func TestSetup(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/admin/setup",
		`{"email":"admin@example.com","password":"password123","firstName":"Admin"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["userId"] == "" {
		t.Errorf("body = %v", body)
	}

	// Once an admin exists, setup refuses to run again.
	w = env.request(http.MethodPost, "/admin/setup",
		`{"email":"second@example.com","password":"password123"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second setup = %d, want 400", w.Code)
	}
	errDetail, _ := decodeBody(t, w)["error"].(map[string]any)
	if errDetail["code"] != "admin_exists" {
		t.Errorf("code = %v", errDetail["code"])
	}
}

func TestSetupValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"short password", `{"email":"admin@example.com","password":"short"}`},
		{"bad email", `{"email":"not-an-email","password":"password123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(http.MethodPost, "/admin/setup", tt.body, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
