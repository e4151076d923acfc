// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"strings"
	"syscall"
	"testing"

	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
	"github.com/tdasolutions/sitecms/internal/testutil"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"535 bad credentials", &textproto.Error{Code: 535, Msg: "authentication failed"}, ClassAuthenticationFailed},
		{"530 auth required", &textproto.Error{Code: 530, Msg: "authentication required"}, ClassAuthenticationFailed},
		{"454 temporary failure", &textproto.Error{Code: 454, Msg: "TLS not available"}, ClassConnectionRefused},
		{"wrapped protocol error", fmt.Errorf("SMTP auth: %w", &textproto.Error{Code: 535, Msg: "no"}), ClassAuthenticationFailed},
		{"dns failure", &net.DNSError{Err: "no such host", Name: "smtp.invalid"}, ClassHostNotFound},
		{"connection refused", fmt.Errorf("connecting: %w", syscall.ECONNREFUSED), ClassConnectionRefused},
		{"connection reset", syscall.ECONNRESET, ClassConnectionRefused},
		{"dial timeout", timeoutError{}, ClassConnectionRefused},
		{"host message heuristic", errors.New("dial tcp: lookup smtp.invalid: no such host"), ClassHostNotFound},
		{"refused message heuristic", errors.New("dial tcp 127.0.0.1:587: connection refused"), ClassConnectionRefused},
		{"gmail auth message", errors.New("535-5.7.8 Username and Password not accepted"), ClassAuthenticationFailed},
		{"unknown", errors.New("message rejected as spam"), ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := classify(tt.err)
			if se.Class != tt.want {
				t.Errorf("classify(%v) = %s, want %s", tt.err, se.Class, tt.want)
			}
			if !errors.Is(se, tt.err) {
				t.Error("SendError does not unwrap to the original error")
			}
		})
	}
}

func TestErrorClassDetail(t *testing.T) {
	for _, class := range []ErrorClass{ClassAuthenticationFailed, ClassConnectionRefused, ClassHostNotFound, ClassUnknown} {
		if class.Detail() == "" {
			t.Errorf("Detail(%s) is empty", class)
		}
	}
	if !strings.Contains(ClassAuthenticationFailed.Detail(), "username and password") {
		t.Errorf("auth detail = %q", ClassAuthenticationFailed.Detail())
	}
}

func TestAlternateSettings(t *testing.T) {
	tests := []struct {
		name       string
		port       int64
		secure     bool
		wantPort   int64
		wantSecure bool
	}{
		{"starttls to implicit", 587, false, 465, true},
		{"implicit to starttls", 465, true, 587, false},
		{"secure on odd port", 2465, true, 587, false},
		{"port 465 without secure flag", 465, false, 587, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alt := alternateSettings(model.EmailSettings{SMTPHost: "smtp.example.com", SMTPPort: tt.port, SMTPSecure: tt.secure})
			if alt.SMTPPort != tt.wantPort || alt.SMTPSecure != tt.wantSecure {
				t.Errorf("alternate = %d/%v, want %d/%v", alt.SMTPPort, alt.SMTPSecure, tt.wantPort, tt.wantSecure)
			}
			if alt.SMTPHost != "smtp.example.com" {
				t.Errorf("host changed to %q", alt.SMTPHost)
			}
		})
	}
}

func TestContainsFold(t *testing.T) {
	if !containsFold("PLAIN LOGIN CRAM-MD5", "login") {
		t.Error("case-insensitive match failed")
	}
	if containsFold("PLAIN LOGIN", "XOAUTH2") {
		t.Error("matched a mechanism that is not listed")
	}
	if containsFold("", "PLAIN") {
		t.Error("matched against an empty list")
	}
}

func TestLoginAuth(t *testing.T) {
	a := newLoginAuth("user@example.com", "secret")

	mech, initial, err := a.Start(nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if mech != "LOGIN" || len(initial) != 0 {
		t.Errorf("Start = %q, %q", mech, initial)
	}

	resp, err := a.Next([]byte("Username:"), true)
	if err != nil || string(resp) != "user@example.com" {
		t.Errorf("username challenge = %q, %v", resp, err)
	}
	resp, err = a.Next([]byte("Password:"), true)
	if err != nil || string(resp) != "secret" {
		t.Errorf("password challenge = %q, %v", resp, err)
	}
	if _, err := a.Next([]byte("Something else"), true); err == nil {
		t.Error("unexpected challenge accepted")
	}
	if resp, err := a.Next(nil, false); err != nil || resp != nil {
		t.Errorf("final round = %q, %v", resp, err)
	}
}

func TestComposeMessage(t *testing.T) {
	settings := model.EmailSettings{
		FromEmail: "noreply@tda.sa",
		FromName:  "TDA Solutions",
	}
	msg := string(composeMessage(settings, "admin@tda.sa", "طلب تواصل جديد", "<p>هلا</p>", "هلا"))

	if !strings.Contains(msg, "To: admin@tda.sa\r\n") {
		t.Error("missing To header")
	}
	if !strings.Contains(msg, "<noreply@tda.sa>") {
		t.Error("missing from address")
	}
	// Non-ASCII subject must be MIME encoded.
	if !strings.Contains(msg, "Subject: =?UTF-8?q?") {
		t.Error("subject not MIME encoded")
	}
	if !strings.Contains(msg, "multipart/alternative") {
		t.Error("missing multipart content type")
	}
	if !strings.Contains(msg, "text/plain; charset=UTF-8") || !strings.Contains(msg, "text/html; charset=UTF-8") {
		t.Error("missing alternative parts")
	}
	if strings.Index(msg, "text/plain") > strings.Index(msg, "text/html") {
		t.Error("plain part must precede the html part")
	}
}

func TestContactHTMLEscapesInput(t *testing.T) {
	out := contactHTML(ContactData{
		Name:    `<script>alert("x")</script>`,
		Email:   "a@b.c",
		Phone:   "0501234567",
		Service: "تطوير المواقع",
		Message: "مرحبا",
	})
	if strings.Contains(out, "<script>") {
		t.Error("input not escaped")
	}
	if !strings.Contains(out, `dir="rtl"`) {
		t.Error("missing RTL direction")
	}
	if !strings.Contains(out, "tel:0501234567") {
		t.Error("missing phone link")
	}
}

func TestSendTestConnectionRefused(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	// Port 1 on loopback refuses immediately, no network needed.
	_, err := store.New(db).SaveEmailSettings(ctx, store.EmailSettingsParams{
		Provider:  model.EmailProviderSMTP,
		SMTPHost:  "127.0.0.1",
		SMTPPort:  1,
		FromEmail: "noreply@example.com",
	})
	if err != nil {
		t.Fatalf("SaveEmailSettings: %v", err)
	}

	sendErr := New(db, "admin@example.com").SendTest(ctx, "someone@example.com")
	if sendErr == nil {
		t.Fatal("expected delivery failure")
	}
	if sendErr.Class != ClassConnectionRefused {
		t.Errorf("class = %s, want %s", sendErr.Class, ClassConnectionRefused)
	}
}

func TestSendTestWithoutSettings(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sendErr := New(db, "").SendTest(context.Background(), "someone@example.com")
	if sendErr == nil {
		t.Fatal("expected failure without a settings row")
	}
	if sendErr.Class != ClassUnknown {
		t.Errorf("class = %s, want %s", sendErr.Class, ClassUnknown)
	}
}

func TestSendContactNotificationWithoutSettings(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ok := New(db, "").SendContactNotification(context.Background(), ContactData{Name: "أحمد"})
	if ok {
		t.Error("notification reported success without email settings")
	}
}
