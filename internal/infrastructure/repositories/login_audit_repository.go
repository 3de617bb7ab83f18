package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// LoginAuditRepositoryImpl implements domain.LoginAuditRepository using GORM
type LoginAuditRepositoryImpl struct {
	db *gorm.DB
}

// NewLoginAuditRepository creates a new login audit repository
func NewLoginAuditRepository(db *gorm.DB) domain.LoginAuditRepository {
	return &LoginAuditRepositoryImpl{db: db}
}

// Record implements domain.LoginAuditRepository. Rows are append-only.
func (r *LoginAuditRepositoryImpl) Record(ctx context.Context, attempt *domain.LoginAttempt) error {
	row := DBLoginAttempt{
		ID:           attempt.ID,
		CompanyID:    attempt.CompanyID,
		UserID:       attempt.UserID,
		EmployeeCode: attempt.EmployeeCode,
		Email:        attempt.Email,
		IP:           attempt.IP,
		UserAgent:    attempt.UserAgent,
		Success:      attempt.Success,
		Reason:       string(attempt.Reason),
		CreatedAt:    attempt.CreatedAt,
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

var _ domain.LoginAuditRepository = (*LoginAuditRepositoryImpl)(nil)
