// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"errors"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"syscall"
)

// ErrorClass buckets SMTP failures for admin diagnostics.
type ErrorClass string

const (
	ClassAuthenticationFailed ErrorClass = "AuthenticationFailed"
	ClassConnectionRefused    ErrorClass = "ConnectionRefused"
	ClassHostNotFound         ErrorClass = "HostNotFound"
	ClassUnknown              ErrorClass = "Unknown"
)

// Detail returns a human-readable remediation hint for the class.
func (c ErrorClass) Detail() string {
	switch c {
	case ClassAuthenticationFailed:
		return "Authentication failed. Check the SMTP username and password."
	case ClassConnectionRefused:
		return "Connection refused. Check the SMTP host, port, and security settings."
	case ClassHostNotFound:
		return "SMTP host not found. Check the server address."
	default:
		return "Email delivery failed. Check the SMTP settings."
	}
}

// SendError is a classified delivery failure.
type SendError struct {
	Class ErrorClass
	Err   error
}

func (e *SendError) Error() string { return e.Err.Error() }

func (e *SendError) Unwrap() error { return e.Err }

// classify maps a raw delivery error onto the taxonomy. Server reply codes
// take precedence, then network error types, then message heuristics for
// wrapped errors that lost their type.
func classify(err error) *SendError {
	se := &SendError{Class: ClassUnknown, Err: err}

	var proto *textproto.Error
	if errors.As(err, &proto) {
		switch proto.Code {
		case 530, 534, 535, 538:
			se.Class = ClassAuthenticationFailed
		case 454:
			se.Class = ClassConnectionRefused
		}
		if se.Class != ClassUnknown {
			return se
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		se.Class = ClassHostNotFound
		return se
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		se.Class = ClassConnectionRefused
		return se
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		se.Class = ClassConnectionRefused
		return se
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such host"):
		se.Class = ClassHostNotFound
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "connection reset"):
		se.Class = ClassConnectionRefused
	case strings.Contains(msg, "auth"), strings.Contains(msg, "username and password not accepted"):
		se.Class = ClassAuthenticationFailed
	}
	return se
}

// containsFold reports whether the space-separated extension parameter list
// contains the given mechanism name, case-insensitively.
func containsFold(list, mech string) bool {
	for _, part := range strings.Fields(list) {
		if strings.EqualFold(part, mech) {
			return true
		}
	}
	return false
}

// loginAuth implements the LOGIN mechanism, which net/smtp does not ship.
type loginAuth struct {
	username string
	password string
}

func newLoginAuth(username, password string) *loginAuth {
	return &loginAuth{username: username, password: password}
}

func (a *loginAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return "LOGIN", []byte{}, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	switch strings.TrimSpace(strings.ToLower(string(fromServer))) {
	case "username:":
		return []byte(a.username), nil
	case "password:":
		return []byte(a.password), nil
	default:
		return nil, errors.New("unexpected LOGIN challenge")
	}
}
