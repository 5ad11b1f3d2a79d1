package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	attendanceModel "hadirku_backend/internals/features/attendance/checkin/model"
	sessionModel "hadirku_backend/internals/features/attendance/sessions/model"
	orgModel "hadirku_backend/internals/features/organizations/organization/model"
)

// Store interfaces — implementasi GORM ada di package repository;
// test pakai fake in-memory.

type SessionStore interface {
	// FindByID return ErrSessionNotFound kalau tidak ada.
	FindByID(ctx context.Context, id uuid.UUID) (*sessionModel.SessionModel, error)
}

type OrganizationStore interface {
	// FindByID return nil,nil kalau organisasi tidak ada;
	// hanya dipakai untuk fallback fence default organisasi.
	FindByID(ctx context.Context, id uuid.UUID) (*orgModel.OrganizationModel, error)
}

type MembershipStore interface {
	IsMember(ctx context.Context, orgID, userID uuid.UUID) (bool, error)
}

type AttendanceStore interface {
	// FindBySessionAndMember return ErrRecordNotFound kalau belum ada.
	FindBySessionAndMember(ctx context.Context, sessionID, memberID uuid.UUID) (*attendanceModel.AttendanceRecordModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*attendanceModel.AttendanceRecordModel, error)
	// Create wajib atomic: unique violation (session,member) → ErrDuplicateCheckIn,
	// kegagalan storage lain → ErrPersistence. Tidak boleh ada partial record.
	Create(ctx context.Context, rec *attendanceModel.AttendanceRecordModel) error
	Update(ctx context.Context, rec *attendanceModel.AttendanceRecordModel) error
}

// Clock injectable supaya state machine bisa dites deterministik.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
