// internals/features/attendance/checkin/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	default:
		return false
	}
}

// AttendanceRecordModel: hasil satu attempt check-in. Append-only —
// satu-satunya mutasi yang diizinkan setelah create adalah stamp checkout.
// Invariant pusat: unik per (session_id, member_id), dijaga index DB.
type AttendanceRecordModel struct {
	// PK
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	// FKs + uniqueness guard
	AttendanceRecordSessionID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_session_id;uniqueIndex:uq_attendance_session_member;index:idx_attendance_record_session" json:"attendance_record_session_id"`
	AttendanceRecordMemberID  uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_member_id;uniqueIndex:uq_attendance_session_member;index:idx_attendance_record_member" json:"attendance_record_member_id"`
	AttendanceRecordOrgID     uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_org_id" json:"attendance_record_org_id"`

	// Keputusan presence
	AttendanceRecordStatus    AttendanceStatus `gorm:"type:varchar(16);not null;column:attendance_record_status;index:idx_attendance_record_status" json:"attendance_record_status"`
	AttendanceRecordDistanceM float64          `gorm:"type:numeric(10,2);not null;default:0;column:attendance_record_distance_m" json:"attendance_record_distance_m"`

	// Lokasi yang dilaporkan saat check-in
	AttendanceRecordLat float64 `gorm:"type:numeric(9,6);not null;column:attendance_record_lat" json:"attendance_record_lat"`
	AttendanceRecordLng float64 `gorm:"type:numeric(9,6);not null;column:attendance_record_lng" json:"attendance_record_lng"`

	AttendanceRecordCheckedInAt time.Time `gorm:"type:timestamptz;not null;column:attendance_record_checked_in_at" json:"attendance_record_checked_in_at"`

	// Checkout (opsional, sekali saja; status TIDAK dihitung ulang)
	AttendanceRecordCheckedOutAt *time.Time `gorm:"type:timestamptz;column:attendance_record_checked_out_at" json:"attendance_record_checked_out_at,omitempty"`
	AttendanceRecordCheckoutLat  *float64   `gorm:"type:numeric(9,6);column:attendance_record_checkout_lat" json:"attendance_record_checkout_lat,omitempty"`
	AttendanceRecordCheckoutLng  *float64   `gorm:"type:numeric(9,6);column:attendance_record_checkout_lng" json:"attendance_record_checkout_lng,omitempty"`

	// Metadata client (device id, akurasi GPS, dll.)
	AttendanceRecordMeta datatypes.JSONMap `gorm:"type:jsonb;column:attendance_record_meta" json:"attendance_record_meta,omitempty"`

	// Timestamps
	AttendanceRecordCreatedAt time.Time `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}
