// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tdasolutions/sitecms/internal/audit"
	"github.com/tdasolutions/sitecms/internal/auth"
	"github.com/tdasolutions/sitecms/internal/config"
	"github.com/tdasolutions/sitecms/internal/mailer"
	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
	"github.com/tdasolutions/sitecms/internal/testutil"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

// testEnv wires a Handler over a throwaway database with the full router.
type testEnv struct {
	t       *testing.T
	handler *Handler
	router  http.Handler
	queries *store.Queries
	db      *sql.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	cfg := &config.Config{
		JWTSecret: testJWTSecret,
		Env:       "development",
	}
	// Generous IP budget so only the explicit lockout tests hit limits.
	login := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       1000,
		IPBurst:           1000,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
	h := NewHandler(db, cfg, mailer.New(db, "admin@example.com"), audit.NewLogger(db), login)

	return &testEnv{
		t:       t,
		handler: h,
		router:  h.Routes(),
		queries: store.New(db),
		db:      db,
	}
}

// createUser inserts a user and returns it with a valid token.
func (e *testEnv) createUser(role, email, password string) (model.User, string) {
	e.t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		e.t.Fatalf("HashPassword: %v", err)
	}
	user, err := e.queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		e.t.Fatalf("CreateUser: %v", err)
	}
	token, err := auth.GenerateToken([]byte(testJWTSecret), user.Identity())
	if err != nil {
		e.t.Fatalf("GenerateToken: %v", err)
	}
	return user, token
}

// request runs one request through the full router.
func (e *testEnv) request(method, path, body, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeBody parses a JSON object response.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parsing response %q: %v", w.Body.String(), err)
	}
	return body
}

// decodeList parses a JSON array response.
func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("parsing response %q: %v", w.Body.String(), err)
	}
	return list
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "ok" || body["database"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/admin/pages", "/admin/users", "/admin/audit-logs"} {
		if w := env.request(http.MethodGet, path, "", ""); w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, w.Code)
		}
	}
}

func TestAdminRoutesRejectEditor(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleEditor, "editor@example.com", "password123")

	paths := []struct{ method, path string }{
		{http.MethodGet, "/admin/users"},
		{http.MethodGet, "/admin/settings"},
		{http.MethodGet, "/admin/email-settings"},
		{http.MethodGet, "/admin/audit-logs"},
	}
	for _, p := range paths {
		if w := env.request(p.method, p.path, "", token); w.Code != http.StatusForbidden {
			t.Errorf("%s %s as editor = %d, want 403", p.method, p.path, w.Code)
		}
	}

	// The editor surface stays open.
	if w := env.request(http.MethodGet, "/admin/pages", "", token); w.Code != http.StatusOK {
		t.Errorf("GET /admin/pages as editor = %d, want 200", w.Code)
	}
}

func TestViewerCannotEdit(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleViewer, "viewer@example.com", "password123")

	w := env.request(http.MethodPost, "/admin/pages",
		`{"title":"Test","content":{}}`, token)
	if w.Code != http.StatusForbidden {
		t.Errorf("POST /admin/pages as viewer = %d, want 403", w.Code)
	}
}

func TestListAuditLogs(t *testing.T) {
	env := newTestEnv(t)
	admin, token := env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	// A mutation leaves a trail.
	w := env.request(http.MethodPut, "/admin/settings/site_name",
		`{"value":"TDA","type":"string"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("seeding setting: status = %d", w.Code)
	}

	w = env.request(http.MethodGet, "/admin/audit-logs", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	logs := decodeList(t, w)
	if len(logs) != 1 {
		t.Fatalf("got %d audit rows, want 1", len(logs))
	}
	if logs[0]["action"] != model.AuditActionCreate || logs[0]["userId"] != admin.ID {
		t.Errorf("audit row = %v", logs[0])
	}

	if w := env.request(http.MethodGet, "/admin/audit-logs?limit=abc", "", token); w.Code != http.StatusBadRequest {
		t.Errorf("invalid limit = %d, want 400", w.Code)
	}
	if w := env.request(http.MethodGet, "/admin/audit-logs?limit=-5", "", token); w.Code != http.StatusBadRequest {
		t.Errorf("negative limit = %d, want 400", w.Code)
	}
}

func TestInitEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	w := env.request(http.MethodPost, "/admin/init-pages", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("init-pages status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["pagesCreated"] != float64(4) {
		t.Errorf("pagesCreated = %v, want 4", body["pagesCreated"])
	}

	w = env.request(http.MethodPost, "/admin/init-cms", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("init-cms status = %d", w.Code)
	}
	body = decodeBody(t, w)
	if body["elementsCreated"] != float64(5) || body["settingsCreated"] != float64(4) {
		t.Errorf("init-cms body = %v", body)
	}

	// Reruns only fill gaps.
	w = env.request(http.MethodPost, "/admin/init-pages", "", token)
	if got := decodeBody(t, w)["pagesCreated"]; got != float64(0) {
		t.Errorf("second run pagesCreated = %v, want 0", got)
	}
}
