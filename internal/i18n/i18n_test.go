// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import "testing"

func TestT(t *testing.T) {
	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{"arabic message", "ar", "contact.received", "تم استلام طلبكم بنجاح وسيتم التواصل معكم قريباً"},
		{"english message", "en", "auth.invalid_creds", "Invalid credentials"},
		{"unknown lang falls back to arabic", "fr", "auth.required", "يجب تسجيل الدخول"},
		{"unknown key returns key", "ar", "no.such.key", "no.such.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := T(tt.lang, tt.key); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty defaults to arabic", "", "ar"},
		{"arabic", "ar", "ar"},
		{"arabic regional", "ar-SA", "ar"},
		{"english", "en-US,en;q=0.9", "en"},
		{"english preferred over arabic", "en;q=0.9,ar;q=0.5", "en"},
		{"unsupported falls back to arabic", "de-DE", "ar"},
		{"garbage falls back to arabic", ";;;", "ar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchLanguage(tt.header); got != tt.want {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
