// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tdasolutions/sitecms/internal/model"
)

func TestUpsertElement(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleEditor, "editor@example.com", "password123")

	w := env.request(http.MethodPut, "/admin/website-elements/site.tagline",
		`{"elementType":"text","value":"حلول رقمية","category":"general"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["elementKey"] != "site.tagline" || body["value"] != "حلول رقمية" {
		t.Errorf("element = %v", body)
	}
	if body["isActive"] != true {
		t.Error("isActive default not applied")
	}

	// Same key updates in place.
	w = env.request(http.MethodPut, "/admin/website-elements/site.tagline",
		`{"elementType":"text","value":"محدّث","category":"general","isActive":false}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("second upsert = %d", w.Code)
	}
	updated := decodeBody(t, w)
	if updated["id"] != body["id"] {
		t.Error("upsert created a second row")
	}
	if updated["isActive"] != false {
		t.Error("isActive not cleared")
	}
}

func TestUpsertElementSanitizesHTML(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleEditor, "editor@example.com", "password123")

	w := env.request(http.MethodPut, "/admin/website-elements/footer.copyright",
		`{"elementType":"html","value":"<p>مرحبا</p><script>alert(1)</script>","category":"footer"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	value, _ := decodeBody(t, w)["value"].(string)
	if strings.Contains(value, "<script>") {
		t.Errorf("script survived sanitization: %q", value)
	}
	if !strings.Contains(value, "<p>مرحبا</p>") {
		t.Errorf("safe markup stripped: %q", value)
	}
}

func TestUpsertElementValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleEditor, "editor@example.com", "password123")

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"elementType":"video","value":"x","category":"general"}`},
		{"missing category", `{"elementType":"text","value":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(http.MethodPut, "/admin/website-elements/k", tt.body, token)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestPublicElementsOnlyActive(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(model.RoleEditor, "editor@example.com", "password123")

	env.request(http.MethodPut, "/admin/website-elements/contact.phone",
		`{"elementType":"text","value":"+966500000000","category":"contact"}`, token)
	env.request(http.MethodPut, "/admin/website-elements/social.old",
		`{"elementType":"link","value":"https://old.example.com","category":"social","isActive":false}`, token)

	w := env.request(http.MethodGet, "/website-elements", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	elements := decodeList(t, w)
	if len(elements) != 1 {
		t.Fatalf("got %d public elements, want 1", len(elements))
	}
	if elements[0]["elementKey"] != "contact.phone" {
		t.Errorf("element = %v", elements[0])
	}

	// The admin view shows everything.
	w = env.request(http.MethodGet, "/admin/website-elements", "", token)
	if got := len(decodeList(t, w)); got != 2 {
		t.Errorf("admin view = %d elements, want 2", got)
	}
}
