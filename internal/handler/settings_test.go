// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/tdasolutions/sitecms/internal/model"
)

func TestUpdateSetting(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	// Numbers round-trip as numbers, not strings.
	w := env.request(http.MethodPut, "/admin/settings/items_per_page",
		`{"value":25,"type":"number"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["value"] != float64(25) || body["type"] != model.SettingTypeNumber {
		t.Errorf("setting = %v", body)
	}

	w = env.request(http.MethodPut, "/admin/settings/maintenance_mode",
		`{"value":true,"type":"boolean"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if decodeBody(t, w)["value"] != true {
		t.Error("boolean value lost its type")
	}

	w = env.request(http.MethodGet, "/admin/settings", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	settings := decodeList(t, w)
	if len(settings) != 2 {
		t.Errorf("got %d settings, want 2", len(settings))
	}
}

func TestUpdateSettingValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"value":"x","type":"date"}`},
		{"value does not match type", `{"value":"not-a-number","type":"number"}`},
		{"malformed body", `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(http.MethodPut, "/admin/settings/k", tt.body, token)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestUpdateEmailSettings(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	// Nothing stored yet.
	if w := env.request(http.MethodGet, "/admin/email-settings", "", token); w.Code != http.StatusNotFound {
		t.Fatalf("GET before configure = %d, want 404", w.Code)
	}

	w := env.request(http.MethodPut, "/admin/email-settings",
		`{"smtpHost":"smtp.zoho.com","smtpPort":587,"smtpUsername":"noreply@tda.sa","smtpPassword":"secret","fromEmail":"noreply@tda.sa","fromName":"TDA Solutions"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["smtpHost"] != "smtp.zoho.com" || body["smtpPort"] != float64(587) {
		t.Errorf("settings = %v", body)
	}
	if _, leaked := body["smtpPassword"]; leaked {
		t.Error("password returned in response")
	}

	// An empty password on update keeps the stored one.
	w = env.request(http.MethodPut, "/admin/email-settings",
		`{"smtpHost":"smtp.zoho.com","smtpPort":465,"smtpSecure":true,"smtpUsername":"noreply@tda.sa","fromEmail":"noreply@tda.sa"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("second update = %d", w.Code)
	}
	stored, err := env.queries.GetActiveEmailSettings(context.Background())
	if err != nil {
		t.Fatalf("GetActiveEmailSettings: %v", err)
	}
	if stored.SMTPPassword != "secret" {
		t.Errorf("password = %q, want the retained secret", stored.SMTPPassword)
	}
	if stored.SMTPPort != 465 || !stored.SMTPSecure {
		t.Errorf("stored = %d/%v", stored.SMTPPort, stored.SMTPSecure)
	}
}

func TestUpdateEmailSettingsValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	tests := []struct {
		name string
		body string
	}{
		{"missing host", `{"smtpPort":587,"fromEmail":"a@b.c"}`},
		{"port out of range", `{"smtpHost":"smtp.example.com","smtpPort":70000,"fromEmail":"a@b.c"}`},
		{"bad from address", `{"smtpHost":"smtp.example.com","smtpPort":587,"fromEmail":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(http.MethodPut, "/admin/email-settings", tt.body, token)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestTestEmail(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleAdmin, "admin@example.com", "password123")

	// Loopback port 1 refuses immediately; the failure must come back
	// classified instead of as a generic 500.
	w := env.request(http.MethodPut, "/admin/email-settings",
		`{"smtpHost":"127.0.0.1","smtpPort":1,"fromEmail":"noreply@example.com"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("configuring SMTP = %d", w.Code)
	}

	w = env.request(http.MethodPost, "/admin/test-email", `{"testEmail":"someone@example.com"}`, token)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Error("success = true on failure")
	}
	if body["error"] != "ConnectionRefused" {
		t.Errorf("error class = %v, want ConnectionRefused", body["error"])
	}
	if details, _ := body["details"].(string); details == "" {
		t.Error("missing remediation detail")
	}

	if w := env.request(http.MethodPost, "/admin/test-email", `{"testEmail":"nope"}`, token); w.Code != http.StatusBadRequest {
		t.Errorf("bad address = %d, want 400", w.Code)
	}
}
