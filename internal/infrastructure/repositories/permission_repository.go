package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// PermissionRepositoryImpl implements domain.PermissionRepository using GORM
type PermissionRepositoryImpl struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) domain.PermissionRepository {
	return &PermissionRepositoryImpl{db: db}
}

type permissionCheckRow struct {
	ProfileStatus string `gorm:"column:profile_status"`
	ScreenID      string `gorm:"column:screen_id"`
	ProfileID     string `gorm:"column:profile_id"`
	HasRow        int    `gorm:"column:has_row"`
	Read          int    `gorm:"column:leitura"`
	Create        int    `gorm:"column:criacao"`
	Edit          int    `gorm:"column:edicao"`
	Delete        int    `gorm:"column:exclusao"`
}

// Check implements domain.PermissionRepository. One joined read resolves the
// user's profile status and the permission row for the screen, so the caller
// can distinguish "inactive profile" from "no row" (default deny).
func (r *PermissionRepositoryImpl) Check(ctx context.Context, companyID, userID, screenID string) (*domain.PermissionCheck, error) {
	var row permissionCheckRow
	err := r.db.WithContext(ctx).
		Table("tb_user").
		Select(`p.status AS profile_status, p.id AS profile_id,
			CASE WHEN pp.profile_id IS NULL THEN 0 ELSE 1 END AS has_row,
			COALESCE(pp.screen_id, '') AS screen_id,
			COALESCE(pp.leitura, 0) AS leitura,
			COALESCE(pp.criacao, 0) AS criacao,
			COALESCE(pp.edicao, 0) AS edicao,
			COALESCE(pp.exclusao, 0) AS exclusao`).
		Joins("JOIN tb_profile p ON p.id = tb_user.profile_id").
		Joins("LEFT JOIN tb_profile_permission pp ON pp.profile_id = p.id AND pp.screen_id = ?", screenID).
		Where("tb_user.id = ? AND tb_user.company_id = ?", userID, companyID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	check := &domain.PermissionCheck{ProfileStatus: row.ProfileStatus}
	if row.HasRow == 1 {
		check.Permission = &domain.Permission{
			ProfileID: row.ProfileID,
			ScreenID:  row.ScreenID,
			Read:      row.Read == 1,
			Create:    row.Create == 1,
			Edit:      row.Edit == 1,
			Delete:    row.Delete == 1,
		}
	}
	return check, nil
}

// ListForUser implements domain.PermissionRepository
func (r *PermissionRepositoryImpl) ListForUser(ctx context.Context, companyID, userID string) (map[string]*domain.Permission, error) {
	var rows []DBPermission
	err := r.db.WithContext(ctx).
		Table("tb_profile_permission").
		Select("tb_profile_permission.*").
		Joins("JOIN tb_profile p ON p.id = tb_profile_permission.profile_id").
		Joins("JOIN tb_user u ON u.profile_id = p.id").
		Where("u.id = ? AND u.company_id = ? AND p.status = ?", userID, companyID, domain.StatusActive).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	matrix := make(map[string]*domain.Permission, len(rows))
	for i := range rows {
		matrix[rows[i].ScreenID] = permToDomain(&rows[i])
	}
	return matrix, nil
}

var _ domain.PermissionRepository = (*PermissionRepositoryImpl)(nil)
