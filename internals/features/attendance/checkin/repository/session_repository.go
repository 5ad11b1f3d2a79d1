// internals/features/attendance/checkin/repository/session_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/checkin/service"
	sessionModel "hadirku_backend/internals/features/attendance/sessions/model"
	orgModel "hadirku_backend/internals/features/organizations/organization/model"
)

// SessionRepository: implementasi service.SessionStore + service.OrganizationStore.
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*sessionModel.SessionModel, error) {
	var sess sessionModel.SessionModel
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", id).
		First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrSessionNotFound
		}
		return nil, errors.Join(service.ErrPersistence, err)
	}
	return &sess, nil
}

// OrganizationRepository: implementasi service.OrganizationStore.
type OrganizationRepository struct {
	DB *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{DB: db}
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*orgModel.OrganizationModel, error) {
	var org orgModel.OrganizationModel
	err := r.DB.WithContext(ctx).
		Where("organization_id = ?", id).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // tanpa organisasi = tanpa fence fallback
		}
		return nil, errors.Join(service.ErrPersistence, err)
	}
	return &org, nil
}

// MembershipRepository: implementasi service.MembershipStore.
type MembershipRepository struct {
	DB *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{DB: db}
}

func (r *MembershipRepository) IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&orgModel.OrganizationMemberModel{}).
		Where("org_member_org_id = ? AND org_member_user_id = ?", orgID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
