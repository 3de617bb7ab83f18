package services

import (
	"context"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// PermissionServiceImpl implements domain.PermissionService
type PermissionServiceImpl struct {
	permRepo domain.PermissionRepository
}

// NewPermissionService creates a new permission service
func NewPermissionService(permRepo domain.PermissionRepository) *PermissionServiceImpl {
	return &PermissionServiceImpl{permRepo: permRepo}
}

// Authorize implements domain.PermissionService. Everything short of an
// explicit grant on an active profile is a deny: inactive profile, missing
// row and unset flag all answer the same way.
func (s *PermissionServiceImpl) Authorize(ctx context.Context, companyID, userID, screenID string, action domain.PermissionAction) error {
	check, err := s.permRepo.Check(ctx, companyID, userID, screenID)
	if err != nil {
		return err
	}
	if check.ProfileStatus != domain.StatusActive {
		return domain.ErrPermissionDenied
	}
	if check.Permission == nil || !check.Permission.Allows(action) {
		return domain.ErrPermissionDenied
	}
	return nil
}

// Matrix implements domain.PermissionService
func (s *PermissionServiceImpl) Matrix(ctx context.Context, companyID, userID string) (map[string]*domain.Permission, error) {
	return s.permRepo.ListForUser(ctx, companyID, userID)
}

var _ domain.PermissionService = (*PermissionServiceImpl)(nil)
