// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tdasolutions/sitecms/internal/auth"
	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
	"github.com/tdasolutions/sitecms/internal/testutil"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func createTestUser(t *testing.T, queries *store.Queries, role string) model.User {
	t.Helper()

	hash, err := auth.HashPassword("test-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        role + "@example.com",
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func TestAuthenticate(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	user := createTestUser(t, queries, model.RoleAdmin)

	token, err := auth.GenerateToken(testSecret, user.Identity())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var gotIdentity *model.Identity
	handler := Authenticate(db, testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = GetIdentity(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("cookie", func(t *testing.T) {
		gotIdentity = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if gotIdentity == nil || gotIdentity.ID != user.ID {
			t.Errorf("identity = %+v, want user %s", gotIdentity, user.ID)
		}
	})

	t.Run("bearer header", func(t *testing.T) {
		gotIdentity = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if gotIdentity == nil || gotIdentity.Email != user.Email {
			t.Errorf("identity = %+v", gotIdentity)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestAuthenticateDeactivatedUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	user := createTestUser(t, queries, model.RoleEditor)

	token, err := auth.GenerateToken(testSecret, user.Identity())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// Deactivation takes effect on the next request even though the token
	// itself is still within its validity window.
	if _, err := queries.UpdateUser(context.Background(), store.UpdateUserParams{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	handler := Authenticate(db, testSecret)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for deactivated user", w.Code)
	}
}

func TestAuthenticateLocalizedError(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	handler := Authenticate(db, testSecret)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parsing error body: %v", err)
	}
	if resp.Error.Code != "unauthorized" {
		t.Errorf("code = %q", resp.Error.Code)
	}
	if resp.Error.Message != "يجب تسجيل الدخول" {
		t.Errorf("message = %q, want Arabic default", resp.Error.Message)
	}
}

func withIdentity(r *http.Request, id model.Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, id))
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		minRole    string
		userRole   string
		wantStatus int
	}{
		{"admin passes admin gate", model.RoleAdmin, model.RoleAdmin, http.StatusOK},
		{"editor fails admin gate", model.RoleAdmin, model.RoleEditor, http.StatusForbidden},
		{"admin passes editor gate", model.RoleEditor, model.RoleAdmin, http.StatusOK},
		{"editor passes editor gate", model.RoleEditor, model.RoleEditor, http.StatusOK},
		{"viewer fails editor gate", model.RoleEditor, model.RoleViewer, http.StatusForbidden},
		{"viewer passes viewer gate", model.RoleViewer, model.RoleViewer, http.StatusOK},
		{"unknown role fails", model.RoleViewer, "ghost", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.minRole)(okHandler())
			req := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), model.Identity{
				ID:   "u1",
				Role: tt.userRole,
			})
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	handler := RequireAdmin()(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without identity", w.Code)
	}
}
