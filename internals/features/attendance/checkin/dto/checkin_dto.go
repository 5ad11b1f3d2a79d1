// internals/features/attendance/checkin/dto/checkin_dto.go
package dto

import (
	"github.com/google/uuid"

	"hadirku_backend/internals/features/attendance/geofence"
)

// Lat/Lng pointer supaya 0 (ekuator/meridian) tidak ketangkep "required".
// geofence.Degrees sudah menormalkan angka vs string dari client.
type CheckInRequest struct {
	SessionID uuid.UUID         `json:"session_id" validate:"required"`
	Lat       *geofence.Degrees `json:"lat" validate:"required"`
	Lng       *geofence.Degrees `json:"lng" validate:"required"`

	// Hanya dihormati di route admin: check-in atas nama member + skip guard.
	MemberID *uuid.UUID `json:"member_id,omitempty"`
	Force    bool       `json:"force,omitempty"`

	Meta map[string]any `json:"meta,omitempty"`
}

func (r *CheckInRequest) Coordinate() geofence.Coordinate {
	return geofence.Coordinate{Lat: *r.Lat, Lng: *r.Lng}
}

type CheckOutRequest struct {
	Lat *geofence.Degrees `json:"lat" validate:"required"`
	Lng *geofence.Degrees `json:"lng" validate:"required"`
}

func (r *CheckOutRequest) Coordinate() geofence.Coordinate {
	return geofence.Coordinate{Lat: *r.Lat, Lng: *r.Lng}
}

type PresencePreviewRequest struct {
	SessionID uuid.UUID         `json:"session_id" validate:"required"`
	Lat       *geofence.Degrees `json:"lat" validate:"required"`
	Lng       *geofence.Degrees `json:"lng" validate:"required"`
}

func (r *PresencePreviewRequest) Coordinate() geofence.Coordinate {
	return geofence.Coordinate{Lat: *r.Lat, Lng: *r.Lng}
}

// ListAttendanceQuery filter listing per session (surface admin).
type ListAttendanceQuery struct {
	Status      *string `query:"status"`
	MemberID    *string `query:"member_id"`
	CreatedFrom *string `query:"created_from"` // YYYY-MM-DD
	CreatedTo   *string `query:"created_to"`   // YYYY-MM-DD
	Sort        *string `query:"sort"`         // checked_in_asc|checked_in_desc
}
