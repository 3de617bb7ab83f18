package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// CredentialRepositoryImpl implements domain.CredentialRepository using GORM
type CredentialRepositoryImpl struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *gorm.DB) domain.CredentialRepository {
	return &CredentialRepositoryImpl{db: db}
}

// FindByUserID implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*domain.Credential, error) {
	var row DBCredential
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialMissing
		}
		return nil, err
	}
	return &domain.Credential{
		UserID:         row.UserID,
		PasswordHash:   row.PasswordHash,
		LastLoginAt:    row.LastLoginAt,
		FailedAttempts: row.FailedAttempts,
		LockedUntil:    row.LockedUntil,
	}, nil
}

// RecordFailure implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) RecordFailure(ctx context.Context, userID string, attempts int, lockedUntil *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBCredential{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"failed_attempts": attempts,
			"locked_until":    lockedUntil,
		}).Error
}

// ResetLockout implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) ResetLockout(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&DBCredential{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"failed_attempts": 0,
			"locked_until":    nil,
		}).Error
}

// StampLogin implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) StampLogin(ctx context.Context, userID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBCredential{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"failed_attempts": 0,
			"locked_until":    nil,
			"last_login_at":   at,
		}).Error
}

// ReplacePassword implements domain.CredentialRepository. Swapping the hash
// and clearing lockout state is one update so a reset can never leave a
// locked account with a fresh password.
func (r *CredentialRepositoryImpl) ReplacePassword(ctx context.Context, userID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&DBCredential{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":   passwordHash,
			"failed_attempts": 0,
			"locked_until":    nil,
		}).Error
}

var _ domain.CredentialRepository = (*CredentialRepositoryImpl)(nil)
