package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// joinedUser carries the user row plus the tenant and profile columns the
// login pipeline gates on.
type joinedUser struct {
	DBUser
	CompanyStatus string `gorm:"column:company_status"`
	ProfileName   string `gorm:"column:profile_name"`
}

const userJoinSelect = "tb_user.*, c.status AS company_status, p.name AS profile_name"

// FindByEmployeeCode implements domain.UserRepository. The employee code is
// globally unique, so this is the one read that is not tenant-scoped: it is
// how the tenant is resolved in the first place.
func (r *UserRepositoryImpl) FindByEmployeeCode(ctx context.Context, code string) (*domain.User, error) {
	var row joinedUser
	err := r.db.WithContext(ctx).
		Table("tb_user").
		Select(userJoinSelect).
		Joins("LEFT JOIN tb_company c ON c.id = tb_user.company_id").
		Joins("LEFT JOIN tb_profile p ON p.id = tb_user.profile_id").
		Where("tb_user.cs = ?", code).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.joinedToDomain(&row), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, companyID, userID string) (*domain.User, error) {
	var row joinedUser
	err := r.db.WithContext(ctx).
		Table("tb_user").
		Select(userJoinSelect).
		Joins("LEFT JOIN tb_company c ON c.id = tb_user.company_id").
		Joins("LEFT JOIN tb_profile p ON p.id = tb_user.profile_id").
		Where("tb_user.id = ? AND tb_user.company_id = ?", userID, companyID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.joinedToDomain(&row), nil
}

// StampSecurityValidated implements domain.UserRepository
func (r *UserRepositoryImpl) StampSecurityValidated(ctx context.Context, companyID, userID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBUser{}).
		Where("id = ? AND company_id = ?", userID, companyID).
		Updates(map[string]interface{}{
			"security_validated_at": at,
			"updated_at":            at,
		}).Error
}

func (r *UserRepositoryImpl) joinedToDomain(row *joinedUser) *domain.User {
	return &domain.User{
		ID:                  row.ID,
		CompanyID:           row.CompanyID,
		Name:                row.Name,
		EmployeeCode:        row.EmployeeCode,
		Email:               row.Email,
		ProfileID:           row.ProfileID,
		ProfileName:         row.ProfileName,
		JobTitle:            row.JobTitle,
		Coordination:        row.Coordination,
		Team:                row.Team,
		Status:              row.Status,
		SecurityValidatedAt: row.SecurityValidatedAt,
		CompanyStatus:       row.CompanyStatus,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

var _ domain.UserRepository = (*UserRepositoryImpl)(nil)
