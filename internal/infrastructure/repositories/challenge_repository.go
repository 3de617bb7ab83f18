package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// ChallengeRepositoryImpl implements domain.ChallengeRepository using GORM
type ChallengeRepositoryImpl struct {
	db *gorm.DB
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *gorm.DB) domain.ChallengeRepository {
	return &ChallengeRepositoryImpl{db: db}
}

// Create implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) Create(ctx context.Context, challenge *domain.SecurityChallenge) error {
	return r.db.WithContext(ctx).Create(&DBChallenge{
		ID:           challenge.ID,
		CompanyID:    challenge.CompanyID,
		UserID:       challenge.UserID,
		EmployeeCode: challenge.EmployeeCode,
		CodeHash:     challenge.CodeHash,
		ExpiresAt:    challenge.ExpiresAt,
		Status:       string(challenge.Status),
		Attempts:     challenge.Attempts,
		CreatedAt:    challenge.CreatedAt,
	}).Error
}

// FindByID implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) FindByID(ctx context.Context, challengeID string) (*domain.SecurityChallenge, error) {
	var row DBChallenge
	err := r.db.WithContext(ctx).Where("id = ?", challengeID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChallengeInvalid
		}
		return nil, err
	}
	return &domain.SecurityChallenge{
		ID:           row.ID,
		CompanyID:    row.CompanyID,
		UserID:       row.UserID,
		EmployeeCode: row.EmployeeCode,
		CodeHash:     row.CodeHash,
		ExpiresAt:    row.ExpiresAt,
		Status:       domain.ChallengeStatus(row.Status),
		Attempts:     row.Attempts,
		CreatedAt:    row.CreatedAt,
		UsedAt:       row.UsedAt,
		RevokedAt:    row.RevokedAt,
	}, nil
}

// RevokePending implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) RevokePending(ctx context.Context, userID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBChallenge{}).
		Where("user_id = ? AND status = ?", userID, string(domain.ChallengePending)).
		Updates(map[string]interface{}{
			"status":     string(domain.ChallengeRevoked),
			"revoked_at": at,
		}).Error
}

// MarkUsed implements domain.ChallengeRepository. The status guard makes the
// pending -> used transition win at most once under concurrent confirms.
func (r *ChallengeRepositoryImpl) MarkUsed(ctx context.Context, challengeID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&DBChallenge{}).
		Where("id = ? AND status = ?", challengeID, string(domain.ChallengePending)).
		Updates(map[string]interface{}{
			"status":  string(domain.ChallengeUsed),
			"used_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrChallengeInvalid
	}
	return nil
}

// IncrementAttempts implements domain.ChallengeRepository and returns the
// counter after the increment.
func (r *ChallengeRepositoryImpl) IncrementAttempts(ctx context.Context, challengeID string) (int, error) {
	err := r.db.WithContext(ctx).
		Model(&DBChallenge{}).
		Where("id = ?", challengeID).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
	if err != nil {
		return 0, err
	}

	var attempts int
	err = r.db.WithContext(ctx).
		Model(&DBChallenge{}).
		Where("id = ?", challengeID).
		Pluck("attempts", &attempts).Error
	if err != nil {
		return 0, err
	}
	return attempts, nil
}

// Revoke implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) Revoke(ctx context.Context, challengeID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBChallenge{}).
		Where("id = ? AND status = ?", challengeID, string(domain.ChallengePending)).
		Updates(map[string]interface{}{
			"status":     string(domain.ChallengeRevoked),
			"revoked_at": at,
		}).Error
}

// Delete implements domain.ChallengeRepository. Only used to roll back a
// challenge whose code could not be delivered.
func (r *ChallengeRepositoryImpl) Delete(ctx context.Context, challengeID string) error {
	return r.db.WithContext(ctx).Where("id = ?", challengeID).Delete(&DBChallenge{}).Error
}

var _ domain.ChallengeRepository = (*ChallengeRepositoryImpl)(nil)
