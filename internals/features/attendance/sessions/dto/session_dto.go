// internals/features/attendance/sessions/dto/session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"hadirku_backend/internals/features/attendance/geofence"
)

type CreateSessionRequest struct {
	OrgID    uuid.UUID `json:"org_id" validate:"required"`
	Title    string    `json:"title" validate:"required,min=3,max=160"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`

	// Geofence opsional; tanpa lat/lng sesi jatuh ke fence organisasi
	Lat     *geofence.Degrees `json:"lat,omitempty"`
	Lng     *geofence.Degrees `json:"lng,omitempty"`
	RadiusM *float64          `json:"radius_m,omitempty" validate:"omitempty,gt=0"`

	LateGraceMin int `json:"late_grace_min" validate:"gte=0"`
}

type ToggleActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type ListSessionQuery struct {
	OrgID string  `query:"org_id"`
	State *string `query:"state"` // scheduled|open|closed
}
