package domain

import (
	"testing"
	"time"
)

func TestCredentialLockedAt(t *testing.T) {
	now := time.Now()

	cred := &Credential{}
	if cred.LockedAt(now) {
		t.Error("no lock set, must not be locked")
	}

	until := now.Add(time.Minute)
	cred.LockedUntil = &until
	if !cred.LockedAt(now) {
		t.Error("future lock must hold")
	}
	if cred.LockedAt(now.Add(2 * time.Minute)) {
		t.Error("elapsed lock must not hold")
	}
	if cred.LockedAt(until) {
		t.Error("lock must expire exactly at its boundary")
	}
}

func TestSessionRevoked(t *testing.T) {
	s := &Session{}
	if s.Revoked() {
		t.Error("fresh session is not revoked")
	}
	at := time.Now()
	s.RevokedAt = &at
	if !s.Revoked() {
		t.Error("stamped session is revoked")
	}
}

func TestChallengeExpiredAt(t *testing.T) {
	now := time.Now()
	c := &SecurityChallenge{ExpiresAt: now.Add(time.Minute)}
	if c.ExpiredAt(now) {
		t.Error("challenge with time left is not expired")
	}
	if !c.ExpiredAt(now.Add(time.Minute)) {
		t.Error("challenge expires at its boundary")
	}
}

func TestPermissionAllows(t *testing.T) {
	p := &Permission{Read: true, Edit: true}

	tests := []struct {
		action PermissionAction
		want   bool
	}{
		{ActionRead, true},
		{ActionCreate, false},
		{ActionEdit, true},
		{ActionDelete, false},
		{PermissionAction("admin"), false},
	}
	for _, tt := range tests {
		if got := p.Allows(tt.action); got != tt.want {
			t.Errorf("Allows(%q) = %v, want %v", tt.action, got, tt.want)
		}
	}
}

func TestNewLoginAttempt(t *testing.T) {
	failure := NewLoginAttempt(ReasonInvalidPassword, "203.0.113.7", "go-test")
	if failure.Success {
		t.Error("a failure reason must not mark success")
	}

	success := NewLoginAttempt(ReasonLoginSuccess, "203.0.113.7", "go-test")
	if !success.Success {
		t.Error("the success reason must mark success")
	}

	user := &User{ID: "user-1", CompanyID: "company-1", EmployeeCode: "123456", Email: "x@example.com"}
	attempt := NewLoginAttempt(ReasonUserInactive, "", "").ForUser(user)
	if attempt.UserID != "user-1" || attempt.CompanyID != "company-1" || attempt.EmployeeCode != "123456" {
		t.Errorf("identity not attached: %+v", attempt)
	}

	anonymous := NewLoginAttempt(ReasonUserNotFound, "", "").WithEmployeeCode("999999")
	if anonymous.EmployeeCode != "999999" || anonymous.UserID != "" {
		t.Errorf("unexpected anonymous attempt: %+v", anonymous)
	}
}
