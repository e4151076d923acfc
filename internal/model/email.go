// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// EmailProviderSMTP is the only delivery provider currently implemented.
const EmailProviderSMTP = "smtp"

// EmailSettings drives outbound transporter construction. Exactly one row
// is expected active at a time; the mailer reads it per call.
type EmailSettings struct {
	ID           string
	Provider     string
	SMTPHost     string
	SMTPPort     int64
	SMTPUsername string
	SMTPPassword string
	SMTPSecure   bool // true: implicit TLS (465), false: STARTTLS (587)
	FromEmail    string
	FromName     string
	IsActive     bool
	UpdatedAt    time.Time
}
