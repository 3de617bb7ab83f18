package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const passwordSymbols = "!@#$%&"

// validEmployeeCode accepts exactly six ASCII digits.
func validEmployeeCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// strongPassword enforces the complexity policy: at least seven characters
// with a letter, a digit and one of the accepted symbols.
func strongPassword(password string) bool {
	if len(password) < 7 {
		return false
	}
	var letter, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return letter && digit && symbol
}

// maskEmail reduces an address to a delivery hint: the first character of the
// local part plus up to three stars. Local parts of two characters or fewer
// are hidden entirely.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return ""
	}
	local := email[:at]
	if len(local) <= 2 {
		return "**" + email[at:]
	}
	stars := len(local) - 1
	if stars > 3 {
		stars = 3
	}
	return local[:1] + strings.Repeat("*", stars) + email[at:]
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// secretMatches compares a submitted secret against a stored hash without
// leaking the position of the first differing byte.
func secretMatches(storedHash, secret string) bool {
	candidate := hashSecret(secret)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(candidate)) == 1
}

// randomDigits returns n uniformly random decimal digits.
func randomDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to draw random digit: %w", err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}

// randomToken returns 32 random bytes hex-encoded.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to draw random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
