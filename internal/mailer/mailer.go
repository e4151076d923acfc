// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer delivers transactional email over SMTP. The transporter
// is built per call from the active email_settings row; on authentication
// or connection failures a single retry is made with the alternate
// port/security combination (587/STARTTLS vs 465/TLS).
package mailer

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	"github.com/tdasolutions/sitecms/internal/model"
	"github.com/tdasolutions/sitecms/internal/store"
)

const (
	dialTimeout = 30 * time.Second
	ioTimeout   = 60 * time.Second
)

// Mailer sends transactional email using the stored SMTP configuration.
type Mailer struct {
	queries   *store.Queries
	recipient string // contact-form notification destination
}

// New creates a Mailer. recipient is where contact notifications go; when
// empty, the settings row's from address receives them.
func New(db *sql.DB, recipient string) *Mailer {
	return &Mailer{queries: store.New(db), recipient: recipient}
}

// ContactData is the payload composed into a contact notification.
type ContactData struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
}

// SendContactNotification composes and delivers the contact-form email.
// It reports success as a bool and never returns an error: notification
// delivery must not fail the end-user contact request.
func (m *Mailer) SendContactNotification(ctx context.Context, data ContactData) bool {
	settings, err := m.queries.GetActiveEmailSettings(ctx)
	if err != nil {
		slog.Error("loading email settings for contact notification", "error", err)
		return false
	}

	to := m.recipient
	if to == "" {
		to = settings.FromEmail
	}

	subject := fmt.Sprintf("طلب تواصل جديد من %s", data.Name)
	msg := composeMessage(settings, to, subject, contactHTML(data), contactText(data))

	if sendErr := m.deliverWithFallback(settings, to, msg); sendErr != nil {
		slog.Error("contact notification delivery failed",
			"error", sendErr,
			"class", sendErr.Class,
			"host", settings.SMTPHost,
		)
		return false
	}
	return true
}

// SendTest delivers a test message to the given address. It returns a
// *SendError carrying the failure class so the admin UI can display a
// human-readable diagnostic, or nil on success.
func (m *Mailer) SendTest(ctx context.Context, to string) *SendError {
	settings, err := m.queries.GetActiveEmailSettings(ctx)
	if err != nil {
		return &SendError{Class: ClassUnknown, Err: fmt.Errorf("loading email settings: %w", err)}
	}

	subject := "رسالة اختبار من نظام إدارة المحتوى"
	msg := composeMessage(settings, to, subject, testHTML(), testText())

	return m.deliverWithFallback(settings, to, msg)
}

// deliverWithFallback tries the configured transporter, then once more on
// the alternate port/security pair when the failure looks transport- or
// auth-related. DNS failures are terminal: a different port will not fix
// name resolution.
func (m *Mailer) deliverWithFallback(settings model.EmailSettings, to string, msg []byte) *SendError {
	sendErr := send(settings, to, msg)
	if sendErr == nil {
		return nil
	}
	if sendErr.Class == ClassHostNotFound {
		return sendErr
	}

	alt := alternateSettings(settings)
	slog.Warn("SMTP delivery failed, retrying with alternate configuration",
		"error", sendErr,
		"class", sendErr.Class,
		"port", settings.SMTPPort,
		"alt_port", alt.SMTPPort,
	)

	if altErr := send(alt, to, msg); altErr == nil {
		return nil
	}
	// Report the first failure; it reflects the stored configuration.
	return sendErr
}

// alternateSettings swaps between the two common submission configurations:
// 587 with STARTTLS and 465 with implicit TLS.
func alternateSettings(s model.EmailSettings) model.EmailSettings {
	alt := s
	if s.SMTPSecure || s.SMTPPort == 465 {
		alt.SMTPPort = 587
		alt.SMTPSecure = false
	} else {
		alt.SMTPPort = 465
		alt.SMTPSecure = true
	}
	return alt
}

// send performs a single verify-then-send attempt against one transporter
// configuration.
func send(settings model.EmailSettings, to string, msg []byte) *SendError {
	addr := fmt.Sprintf("%s:%d", settings.SMTPHost, settings.SMTPPort)

	var (
		conn net.Conn
		err  error
	)
	if settings.SMTPSecure {
		dialer := &net.Dialer{Timeout: dialTimeout}
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: settings.SMTPHost})
	} else {
		conn, err = net.DialTimeout("tcp", addr, dialTimeout)
	}
	if err != nil {
		return classify(fmt.Errorf("connecting to %s: %w", addr, err))
	}
	_ = conn.SetDeadline(time.Now().Add(ioTimeout))

	client, err := smtp.NewClient(conn, settings.SMTPHost)
	if err != nil {
		_ = conn.Close()
		return classify(fmt.Errorf("SMTP greeting: %w", err))
	}
	defer func() { _ = client.Close() }()

	if !settings.SMTPSecure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: settings.SMTPHost}); err != nil {
				return classify(fmt.Errorf("STARTTLS: %w", err))
			}
		}
	}

	if settings.SMTPUsername != "" {
		if err := client.Auth(selectAuth(client, settings)); err != nil {
			return classify(fmt.Errorf("SMTP auth: %w", err))
		}
	}

	// Connection verification: a round-trip confirming the session is
	// usable before committing to the transaction.
	if err := client.Noop(); err != nil {
		return classify(fmt.Errorf("verifying connection: %w", err))
	}

	if err := client.Mail(settings.FromEmail); err != nil {
		return classify(fmt.Errorf("MAIL FROM: %w", err))
	}
	if err := client.Rcpt(to); err != nil {
		return classify(fmt.Errorf("RCPT TO: %w", err))
	}

	w, err := client.Data()
	if err != nil {
		return classify(fmt.Errorf("DATA: %w", err))
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return classify(fmt.Errorf("writing message: %w", err))
	}
	if err := w.Close(); err != nil {
		return classify(fmt.Errorf("closing message: %w", err))
	}

	return classifyNil(client.Quit())
}

// selectAuth picks an authentication mechanism the server advertises.
// LOGIN is the default because several business providers still only
// accept it.
func selectAuth(client *smtp.Client, settings model.EmailSettings) smtp.Auth {
	if ok, ext := client.Extension("AUTH"); ok && ext != "" {
		if containsFold(ext, "PLAIN") {
			return smtp.PlainAuth("", settings.SMTPUsername, settings.SMTPPassword, settings.SMTPHost)
		}
		if containsFold(ext, "CRAM-MD5") {
			return smtp.CRAMMD5Auth(settings.SMTPUsername, settings.SMTPPassword)
		}
	}
	return newLoginAuth(settings.SMTPUsername, settings.SMTPPassword)
}

func classifyNil(err error) *SendError {
	if err == nil {
		return nil
	}
	return classify(err)
}
