package services

import "testing"

func TestValidEmployeeCode(t *testing.T) {
	valid := []string{"000000", "123456", "999999"}
	for _, code := range valid {
		if !validEmployeeCode(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}

	invalid := []string{"", "12345", "1234567", "12a456", "12345 ", "12-456", "１２３４５６"}
	for _, code := range invalid {
		if validEmployeeCode(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}

func TestStrongPassword(t *testing.T) {
	strong := []string{"Senha@1", "trem#2024", "a1!bcde", "LONGA%senha9"}
	for _, pw := range strong {
		if !strongPassword(pw) {
			t.Errorf("expected %q to pass the policy", pw)
		}
	}

	weak := []string{
		"",
		"abcdefg",  // no digit, no symbol
		"1234567!", // no letter
		"Senha123", // no symbol
		"Senha?12", // symbol outside the accepted set
		"S1!",      // too short
	}
	for _, pw := range weak {
		if strongPassword(pw) {
			t.Errorf("expected %q to fail the policy", pw)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"maria.silva@example.com", "m***@example.com"},
		{"abcd@example.com", "a***@example.com"},
		{"abc@example.com", "a**@example.com"},
		{"jo@example.com", "**@example.com"},
		{"a@example.com", "**@example.com"},
		{"not-an-email", ""},
		{"@example.com", ""},
	}
	for _, tt := range tests {
		if got := maskEmail(tt.in); got != tt.want {
			t.Errorf("maskEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSecretMatches(t *testing.T) {
	hash := hashSecret("123456")
	if len(hash) != 64 {
		t.Errorf("expected hex sha256, got %q", hash)
	}
	if !secretMatches(hash, "123456") {
		t.Error("expected matching secret to verify")
	}
	if secretMatches(hash, "123457") {
		t.Error("expected different secret to fail")
	}
}

func TestRandomDigits(t *testing.T) {
	code, err := randomDigits(6)
	if err != nil {
		t.Fatalf("randomDigits: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Errorf("non-digit %q in code %q", r, code)
		}
	}
}
