package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TokenConfig struct {
	Secret           string `yaml:"secret"`
	TTL              string `yaml:"ttl"`
	RefreshThreshold string `yaml:"refresh_threshold"`
	CookieName       string `yaml:"cookie_name"`
}

type LockoutConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	LockWindow  string `yaml:"lock_window"`
}

type SecurityValidationConfig struct {
	CodeTTL              string `yaml:"code_ttl"`
	RevalidationInterval string `yaml:"revalidation_interval"`
	ResendWindow         string `yaml:"resend_window"`
	MaxAttempts          int    `yaml:"max_attempts"`
	EmailSubject         string `yaml:"email_subject"`
}

type PasswordResetConfig struct {
	TokenTTL     string `yaml:"token_ttl"`
	FrontendURL  string `yaml:"frontend_url"`
	EmailSubject string `yaml:"email_subject"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type ConfigFile struct {
	App                AppConfig                `yaml:"app"`
	Database           DatabaseConfig           `yaml:"database"`
	Redis              RedisConfig              `yaml:"redis"`
	Token              TokenConfig              `yaml:"token"`
	Lockout            LockoutConfig            `yaml:"lockout"`
	SecurityValidation SecurityValidationConfig `yaml:"security_validation"`
	PasswordReset      PasswordResetConfig      `yaml:"password_reset"`
	SMTP               SMTPConfig               `yaml:"smtp"`
}

type Config struct {
	Port    string
	GinMode string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TokenSecret      string
	TokenTTL         time.Duration
	RefreshThreshold time.Duration
	CookieName       string

	LockoutMaxAttempts int
	LockWindow         time.Duration

	ChallengeCodeTTL     time.Duration
	RevalidationInterval time.Duration
	ResendWindow         time.Duration
	ChallengeMaxAttempts int
	ChallengeSubject     string

	ResetTokenTTL    time.Duration
	ResetFrontendURL string
	ResetSubject     string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// secrets that should not live in the file.
func Load() (*Config, error) {
	return LoadFile(env("CONFIG_FILE", "config/config.yml"))
}

func LoadFile(path string) (*Config, error) {
	file, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	tokenTTL, err := parseDuration(file.Token.TTL, 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid token TTL: %w", err)
	}
	refreshThreshold, err := parseDuration(file.Token.RefreshThreshold, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh threshold: %w", err)
	}
	lockWindow, err := parseDuration(file.Lockout.LockWindow, 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid lock window: %w", err)
	}
	codeTTL, err := parseDuration(file.SecurityValidation.CodeTTL, 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid security code TTL: %w", err)
	}
	revalidation, err := parseDuration(file.SecurityValidation.RevalidationInterval, 30*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid revalidation interval: %w", err)
	}
	resendWindow, err := parseDuration(file.SecurityValidation.ResendWindow, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid resend window: %w", err)
	}
	resetTTL, err := parseDuration(file.PasswordReset.TokenTTL, 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	secret := env("TOKEN_SECRET", file.Token.Secret)
	if secret == "" {
		return nil, fmt.Errorf("token secret is required (TOKEN_SECRET or token.secret)")
	}

	cfg := &Config{
		Port:    fmt.Sprintf("%d", file.App.Port),
		GinMode: file.App.GinMode,

		DSN: env("DATABASE_DSN", file.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       file.Redis.DB,

		TokenSecret:      secret,
		TokenTTL:         tokenTTL,
		RefreshThreshold: refreshThreshold,
		CookieName:       file.Token.CookieName,

		LockoutMaxAttempts: file.Lockout.MaxAttempts,
		LockWindow:         lockWindow,

		ChallengeCodeTTL:     codeTTL,
		RevalidationInterval: revalidation,
		ResendWindow:         resendWindow,
		ChallengeMaxAttempts: file.SecurityValidation.MaxAttempts,
		ChallengeSubject:     file.SecurityValidation.EmailSubject,

		ResetTokenTTL:    resetTTL,
		ResetFrontendURL: env("PASSWORD_RESET_FRONTEND_URL", file.PasswordReset.FrontendURL),
		ResetSubject:     file.PasswordReset.EmailSubject,

		SMTPHost:     env("SMTP_HOST", file.SMTP.Host),
		SMTPPort:     file.SMTP.Port,
		SMTPUsername: env("SMTP_USERNAME", file.SMTP.Username),
		SMTPPassword: env("SMTP_PASSWORD", file.SMTP.Password),
		SMTPFrom:     env("SMTP_FROM", file.SMTP.From),
	}

	if cfg.CookieName == "" {
		cfg.CookieName = "tecrail_session"
	}
	if cfg.LockoutMaxAttempts <= 0 {
		cfg.LockoutMaxAttempts = 5
	}
	if cfg.ChallengeMaxAttempts <= 0 {
		cfg.ChallengeMaxAttempts = 5
	}
	if cfg.ChallengeSubject == "" {
		cfg.ChallengeSubject = "TO Works · Código de segurança"
	}
	if cfg.ResetSubject == "" {
		cfg.ResetSubject = "TO Works · Redefinição de senha"
	}
	if cfg.ResetFrontendURL == "" {
		cfg.ResetFrontendURL = "http://localhost:5173"
	}

	return cfg, nil
}

func readConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &file, nil
}

func parseDuration(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}
