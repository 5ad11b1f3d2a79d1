// internals/features/organizations/organization/dto/organization_dto.go
package dto

import (
	"github.com/google/uuid"

	"hadirku_backend/internals/features/attendance/geofence"
)

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=3,max=120"`
	Slug string `json:"slug" validate:"required,min=3,max=140,lowercase"`

	// Geofence default organisasi (opsional)
	Lat     *geofence.Degrees `json:"lat,omitempty"`
	Lng     *geofence.Degrees `json:"lng,omitempty"`
	RadiusM *float64          `json:"radius_m,omitempty" validate:"omitempty,gt=0"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"omitempty,oneof=member teacher admin"`
}
