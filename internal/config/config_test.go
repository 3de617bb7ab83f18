package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 8080
token:
  secret: "file-secret"
database:
  dsn: "postgres://localhost/worksdb"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.TokenSecret != "file-secret" {
		t.Errorf("secret %q", cfg.TokenSecret)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("token ttl default %v", cfg.TokenTTL)
	}
	if cfg.RefreshThreshold != 5*time.Minute {
		t.Errorf("refresh threshold default %v", cfg.RefreshThreshold)
	}
	if cfg.LockWindow != 15*time.Minute {
		t.Errorf("lock window default %v", cfg.LockWindow)
	}
	if cfg.LockoutMaxAttempts != 5 {
		t.Errorf("lockout attempts default %d", cfg.LockoutMaxAttempts)
	}
	if cfg.ChallengeCodeTTL != 15*time.Minute {
		t.Errorf("code ttl default %v", cfg.ChallengeCodeTTL)
	}
	if cfg.RevalidationInterval != 30*24*time.Hour {
		t.Errorf("revalidation default %v", cfg.RevalidationInterval)
	}
	if cfg.ResetTokenTTL != 30*time.Minute {
		t.Errorf("reset ttl default %v", cfg.ResetTokenTTL)
	}
	if cfg.CookieName != "tecrail_session" {
		t.Errorf("cookie name default %q", cfg.CookieName)
	}
	if cfg.Port != "8080" {
		t.Errorf("port %q", cfg.Port)
	}
}

func TestLoadFile_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 9000
  gin_mode: release
token:
  secret: "s"
  ttl: 1h
  refresh_threshold: 10m
  cookie_name: other_session
lockout:
  max_attempts: 3
  lock_window: 5m
security_validation:
  code_ttl: 2m
  revalidation_interval: 720h
  resend_window: 30s
  max_attempts: 2
password_reset:
  token_ttl: 10m
  frontend_url: https://front.example.com
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.TokenTTL != time.Hour || cfg.RefreshThreshold != 10*time.Minute {
		t.Errorf("token timings: %v / %v", cfg.TokenTTL, cfg.RefreshThreshold)
	}
	if cfg.LockoutMaxAttempts != 3 || cfg.LockWindow != 5*time.Minute {
		t.Errorf("lockout: %d / %v", cfg.LockoutMaxAttempts, cfg.LockWindow)
	}
	if cfg.ChallengeCodeTTL != 2*time.Minute || cfg.ResendWindow != 30*time.Second || cfg.ChallengeMaxAttempts != 2 {
		t.Errorf("challenge: %v / %v / %d", cfg.ChallengeCodeTTL, cfg.ResendWindow, cfg.ChallengeMaxAttempts)
	}
	if cfg.ResetFrontendURL != "https://front.example.com" {
		t.Errorf("frontend url %q", cfg.ResetFrontendURL)
	}
	if cfg.CookieName != "other_session" {
		t.Errorf("cookie name %q", cfg.CookieName)
	}
}

func TestLoadFile_EnvOverridesSecret(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 8080
token:
  secret: "file-secret"
`)
	t.Setenv("TOKEN_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "postgres://env/worksdb")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.TokenSecret != "env-secret" {
		t.Errorf("expected env secret to win, got %q", cfg.TokenSecret)
	}
	if cfg.DSN != "postgres://env/worksdb" {
		t.Errorf("expected env DSN to win, got %q", cfg.DSN)
	}
}

func TestLoadFile_MissingSecretFails(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 8080
`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected an error without a token secret")
	}
}

func TestLoadFile_BadDurationFails(t *testing.T) {
	path := writeConfig(t, `
token:
  secret: "s"
  ttl: "thirty minutes"
`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected an error for an unparsable duration")
	}
}
