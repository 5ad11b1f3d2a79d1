// internals/features/attendance/sessions/model/session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/geofence"
)

type SessionState string

const (
	SessionScheduled SessionState = "scheduled" // now < starts_at
	SessionOpen      SessionState = "open"      // starts_at <= now < ends_at && is_active
	SessionClosed    SessionState = "closed"    // now >= ends_at ATAU is_active=false
)

type SessionModel struct {
	// PK
	SessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_id" json:"session_id"`

	// Tenant guard
	SessionOrgID uuid.UUID `gorm:"type:uuid;not null;column:session_org_id;index:idx_session_org" json:"session_org_id"`

	SessionTitle     string    `gorm:"type:varchar(160);not null;column:session_title" json:"session_title"`
	SessionCreatedBy uuid.UUID `gorm:"type:uuid;not null;column:session_created_by" json:"session_created_by"`

	// Jendela waktu [starts_at, ends_at)
	SessionStartsAt time.Time `gorm:"type:timestamptz;not null;column:session_starts_at" json:"session_starts_at"`
	SessionEndsAt   time.Time `gorm:"type:timestamptz;not null;column:session_ends_at" json:"session_ends_at"`

	// Toggle admin; false = tutup paksa, tidak peduli jendela waktu
	SessionIsActive bool `gorm:"not null;default:true;column:session_is_active" json:"session_is_active"`

	// Geofence per sesi (opsional; fallback ke fence organisasi)
	SessionLat     *float64 `gorm:"type:numeric(9,6);column:session_lat" json:"session_lat,omitempty"`
	SessionLng     *float64 `gorm:"type:numeric(9,6);column:session_lng" json:"session_lng,omitempty"`
	SessionRadiusM *float64 `gorm:"type:numeric(7,2);column:session_radius_m" json:"session_radius_m,omitempty"`

	// Grace period telat (menit); 0 = fitur late nonaktif
	SessionLateGraceMin int `gorm:"not null;default:0;column:session_late_grace_min" json:"session_late_grace_min"`

	// Timestamps
	SessionCreatedAt time.Time      `gorm:"column:session_created_at;autoCreateTime" json:"session_created_at"`
	SessionUpdatedAt time.Time      `gorm:"column:session_updated_at;autoUpdateTime" json:"session_updated_at"`
	SessionDeletedAt gorm.DeletedAt `gorm:"column:session_deleted_at;index" json:"session_deleted_at,omitempty"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// StateAt menurunkan state dari jam & flag aktif. Closed tidak pernah
// kembali ke Open.
func (m *SessionModel) StateAt(now time.Time) SessionState {
	if !m.SessionIsActive {
		return SessionClosed
	}
	if now.Before(m.SessionStartsAt) {
		return SessionScheduled
	}
	if now.Before(m.SessionEndsAt) {
		return SessionOpen
	}
	return SessionClosed
}

// Fence mengembalikan geofence sesi, atau nil kalau lokasi belum diset.
// Radius kosong/nol memakai defaultRadiusM dari konfigurasi.
func (m *SessionModel) Fence(defaultRadiusM float64) *geofence.GeoFence {
	if m.SessionLat == nil || m.SessionLng == nil {
		return nil
	}
	r := defaultRadiusM
	if m.SessionRadiusM != nil && *m.SessionRadiusM > 0 {
		r = *m.SessionRadiusM
	}
	return &geofence.GeoFence{
		Center: geofence.Coordinate{
			Lat: geofence.Degrees(*m.SessionLat),
			Lng: geofence.Degrees(*m.SessionLng),
		},
		RadiusM: r,
	}
}
