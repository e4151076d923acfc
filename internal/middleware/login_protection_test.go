// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"testing"
	"time"
)

func newTestProtection() *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100, // effectively unlimited for lockout tests
		IPBurst:           100,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
}

func TestIPRateLimit(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       1,
		IPBurst:           2,
		MaxFailedAttempts: 5,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	if !lp.CheckIPRateLimit("10.0.0.1") {
		t.Error("first request blocked")
	}
	if !lp.CheckIPRateLimit("10.0.0.1") {
		t.Error("second request blocked within burst")
	}
	if lp.CheckIPRateLimit("10.0.0.1") {
		t.Error("third request allowed past burst")
	}

	// Other IPs keep their own budget.
	if !lp.CheckIPRateLimit("10.0.0.2") {
		t.Error("different IP blocked")
	}
}

func TestAccountLockout(t *testing.T) {
	lp := newTestProtection()
	email := "user@example.com"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("account locked before any failures")
	}

	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("locked after 1 failure")
	}
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("locked after 2 failures")
	}

	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("not locked after reaching the threshold")
	}
	if duration != time.Minute {
		t.Errorf("first lockout = %v, want %v", duration, time.Minute)
	}

	if locked, remaining := lp.IsAccountLocked(email); !locked || remaining <= 0 {
		t.Errorf("IsAccountLocked = %v, %v", locked, remaining)
	}
}

func TestLockoutDurationDoubles(t *testing.T) {
	lp := newTestProtection()
	email := "repeat@example.com"

	for i := 0; i < 3; i++ {
		lp.RecordFailedAttempt(email)
	}
	// Second round of failures after the first lockout.
	for i := 0; i < 2; i++ {
		lp.RecordFailedAttempt(email)
	}
	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("not locked on second round")
	}
	if duration != 2*time.Minute {
		t.Errorf("second lockout = %v, want %v", duration, 2*time.Minute)
	}
}

func TestSuccessfulLoginClearsFailures(t *testing.T) {
	lp := newTestProtection()
	email := "user@example.com"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	// Counter restarts: two more failures must not lock.
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("locked after counter should have been cleared")
	}
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("locked after counter should have been cleared")
	}
}

func TestLimiterCacheReusesLimiter(t *testing.T) {
	lc := newLimiterCache[string](1, 1)

	a := lc.get("key")
	b := lc.get("key")
	if a != b {
		t.Error("same key returned different limiters")
	}

	if cleared := lc.clearIfExceeds(0); !cleared {
		t.Error("clearIfExceeds(0) did not clear a non-empty cache")
	}
	if cleared := lc.clearIfExceeds(10); cleared {
		t.Error("clearIfExceeds cleared an empty cache")
	}
}
