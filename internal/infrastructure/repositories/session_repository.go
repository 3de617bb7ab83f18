package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using GORM.
// Session rows are the audit trail of every login: they are revoked, never
// deleted.
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Replace implements domain.SessionRepository. Revoking prior sessions and
// inserting the new one share a transaction; two concurrent logins cannot
// both end up with a live session.
func (r *SessionRepositoryImpl) Replace(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&DBSession{}).
			Where("company_id = ? AND user_id = ? AND revoked_at IS NULL", session.CompanyID, session.UserID).
			Update("revoked_at", session.CreatedAt).Error; err != nil {
			return err
		}
		return tx.Create(&DBSession{
			ID:        session.ID,
			CompanyID: session.CompanyID,
			UserID:    session.UserID,
			IP:        session.IP,
			CreatedAt: session.CreatedAt,
		}).Error
	})
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID, companyID, userID string) (*domain.Session, error) {
	var row DBSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ? AND user_id = ?", sessionID, companyID, userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &domain.Session{
		ID:        row.ID,
		CompanyID: row.CompanyID,
		UserID:    row.UserID,
		IP:        row.IP,
		CreatedAt: row.CreatedAt,
		RevokedAt: row.RevokedAt,
	}, nil
}

// Revoke implements domain.SessionRepository. The revoked_at IS NULL guard
// keeps revocation monotonic.
func (r *SessionRepositoryImpl) Revoke(ctx context.Context, sessionID, companyID, userID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBSession{}).
		Where("id = ? AND company_id = ? AND user_id = ? AND revoked_at IS NULL", sessionID, companyID, userID).
		Update("revoked_at", at).Error
}

// RevokeAllForUser implements domain.SessionRepository
func (r *SessionRepositoryImpl) RevokeAllForUser(ctx context.Context, companyID, userID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBSession{}).
		Where("company_id = ? AND user_id = ? AND revoked_at IS NULL", companyID, userID).
		Update("revoked_at", at).Error
}

var _ domain.SessionRepository = (*SessionRepositoryImpl)(nil)
