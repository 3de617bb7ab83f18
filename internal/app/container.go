package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/config"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/infrastructure/auth"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/infrastructure/database"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/infrastructure/notifications"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/infrastructure/repositories"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *database.RedisClient

	UserRepo    domain.UserRepository
	CredRepo    domain.CredentialRepository
	SessionRepo domain.SessionRepository
	ChalRepo    domain.ChallengeRepository
	ResetRepo   domain.ResetTokenRepository
	PermRepo    domain.PermissionRepository
	AuditRepo   domain.LoginAuditRepository

	PasswordSvc  domain.PasswordService
	TokenSvc     domain.TokenService
	Mailer       domain.Mailer
	ChallengeSvc domain.ChallengeService
	AuthSvc      domain.AuthService
	ResetSvc     domain.PasswordResetService
	PermSvc      domain.PermissionService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := c.RedisClient.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.CredRepo = repositories.NewCredentialRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.DB)
	c.ChalRepo = repositories.NewChallengeRepository(c.DB)
	c.ResetRepo = repositories.NewResetTokenRepository(c.DB)
	c.PermRepo = repositories.NewPermissionRepository(c.DB)
	c.AuditRepo = repositories.NewLoginAuditRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewTokenService(c.Config.TokenSecret, c.Config.TokenTTL)
	c.Mailer = notifications.NewSMTPMailer(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.SMTPFrom,
	)

	c.ChallengeSvc = services.NewChallengeService(c.ChalRepo, c.UserRepo, c.Mailer, c.RedisClient, services.ChallengeConfig{
		CodeTTL:      c.Config.ChallengeCodeTTL,
		ResendWindow: c.Config.ResendWindow,
		MaxAttempts:  c.Config.ChallengeMaxAttempts,
		EmailSubject: c.Config.ChallengeSubject,
	})

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.CredRepo,
		c.SessionRepo,
		c.AuditRepo,
		c.ChallengeSvc,
		c.PasswordSvc,
		c.TokenSvc,
		services.AuthConfig{
			MaxAttempts:          c.Config.LockoutMaxAttempts,
			LockWindow:           c.Config.LockWindow,
			RefreshThreshold:     c.Config.RefreshThreshold,
			RevalidationInterval: c.Config.RevalidationInterval,
		},
	)

	c.ResetSvc = services.NewPasswordResetService(
		c.UserRepo,
		c.CredRepo,
		c.ResetRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.Mailer,
		services.ResetConfig{
			TokenTTL:     c.Config.ResetTokenTTL,
			FrontendURL:  c.Config.ResetFrontendURL,
			EmailSubject: c.Config.ResetSubject,
		},
	)

	c.PermSvc = services.NewPermissionService(c.PermRepo)
}
