// internals/features/organizations/organization/model/organization_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/geofence"
)

type OrganizationModel struct {
	// PK
	OrganizationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:organization_id" json:"organization_id"`

	OrganizationName string `gorm:"type:varchar(120);not null;column:organization_name" json:"organization_name"`
	OrganizationSlug string `gorm:"type:varchar(140);not null;unique;column:organization_slug" json:"organization_slug"`

	OrganizationCreatedBy uuid.UUID `gorm:"type:uuid;not null;column:organization_created_by" json:"organization_created_by"`

	// Geofence default organisasi; dipakai kalau sesi tidak punya fence sendiri
	OrganizationLat     *float64 `gorm:"type:numeric(9,6);column:organization_lat" json:"organization_lat,omitempty"`
	OrganizationLng     *float64 `gorm:"type:numeric(9,6);column:organization_lng" json:"organization_lng,omitempty"`
	OrganizationRadiusM *float64 `gorm:"type:numeric(7,2);column:organization_radius_m" json:"organization_radius_m,omitempty"`

	// Timestamps
	OrganizationCreatedAt time.Time      `gorm:"column:organization_created_at;autoCreateTime" json:"organization_created_at"`
	OrganizationUpdatedAt time.Time      `gorm:"column:organization_updated_at;autoUpdateTime" json:"organization_updated_at"`
	OrganizationDeletedAt gorm.DeletedAt `gorm:"column:organization_deleted_at;index" json:"organization_deleted_at,omitempty"`
}

func (OrganizationModel) TableName() string {
	return "organizations"
}

// Fence mengembalikan geofence default organisasi, nil kalau belum diset.
func (m *OrganizationModel) Fence(defaultRadiusM float64) *geofence.GeoFence {
	if m.OrganizationLat == nil || m.OrganizationLng == nil {
		return nil
	}
	r := defaultRadiusM
	if m.OrganizationRadiusM != nil && *m.OrganizationRadiusM > 0 {
		r = *m.OrganizationRadiusM
	}
	return &geofence.GeoFence{
		Center: geofence.Coordinate{
			Lat: geofence.Degrees(*m.OrganizationLat),
			Lng: geofence.Degrees(*m.OrganizationLng),
		},
		RadiusM: r,
	}
}
