// internals/features/organizations/organization/model/organization_member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRole string

const (
	MemberRoleMember  MemberRole = "member"
	MemberRoleTeacher MemberRole = "teacher"
	MemberRoleAdmin   MemberRole = "admin"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleMember, MemberRoleTeacher, MemberRoleAdmin:
		return true
	default:
		return false
	}
}

// OrganizationMemberModel: keanggotaan user di organisasi (unik per pasangan).
type OrganizationMemberModel struct {
	// PK
	OrgMemberID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:org_member_id" json:"org_member_id"`

	// FKs
	OrgMemberOrgID  uuid.UUID `gorm:"type:uuid;not null;column:org_member_org_id;uniqueIndex:uq_org_member;index:idx_org_member_org" json:"org_member_org_id"`
	OrgMemberUserID uuid.UUID `gorm:"type:uuid;not null;column:org_member_user_id;uniqueIndex:uq_org_member;index:idx_org_member_user" json:"org_member_user_id"`

	OrgMemberRole MemberRole `gorm:"type:varchar(16);not null;default:'member';column:org_member_role" json:"org_member_role"`

	// Timestamps
	OrgMemberCreatedAt time.Time      `gorm:"column:org_member_created_at;autoCreateTime" json:"org_member_created_at"`
	OrgMemberDeletedAt gorm.DeletedAt `gorm:"column:org_member_deleted_at;index" json:"org_member_deleted_at,omitempty"`
}

func (OrganizationMemberModel) TableName() string {
	return "organization_members"
}
