package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// ResetTokenRepositoryImpl implements domain.ResetTokenRepository using GORM
type ResetTokenRepositoryImpl struct {
	db *gorm.DB
}

// NewResetTokenRepository creates a new reset token repository
func NewResetTokenRepository(db *gorm.DB) domain.ResetTokenRepository {
	return &ResetTokenRepositoryImpl{db: db}
}

// Create implements domain.ResetTokenRepository
func (r *ResetTokenRepositoryImpl) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(&DBResetToken{
		ID:        token.ID,
		CompanyID: token.CompanyID,
		UserID:    token.UserID,
		TokenHash: token.TokenHash,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}).Error
}

// FindByID implements domain.ResetTokenRepository
func (r *ResetTokenRepositoryImpl) FindByID(ctx context.Context, tokenID string) (*domain.PasswordResetToken, error) {
	var row DBResetToken
	err := r.db.WithContext(ctx).Where("id = ?", tokenID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResetLinkInvalid
		}
		return nil, err
	}
	return &domain.PasswordResetToken{
		ID:        row.ID,
		CompanyID: row.CompanyID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		ExpiresAt: row.ExpiresAt,
		UsedAt:    row.UsedAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// MarkUsed implements domain.ResetTokenRepository. The used_at IS NULL guard
// makes the token single-use under concurrent confirms.
func (r *ResetTokenRepositoryImpl) MarkUsed(ctx context.Context, tokenID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&DBResetToken{}).
		Where("id = ? AND used_at IS NULL", tokenID).
		Update("used_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrResetLinkInvalid
	}
	return nil
}

// Delete implements domain.ResetTokenRepository. Only used to roll back a
// token whose delivery failed.
func (r *ResetTokenRepositoryImpl) Delete(ctx context.Context, tokenID string) error {
	return r.db.WithContext(ctx).Where("id = ?", tokenID).Delete(&DBResetToken{}).Error
}

var _ domain.ResetTokenRepository = (*ResetTokenRepositoryImpl)(nil)
