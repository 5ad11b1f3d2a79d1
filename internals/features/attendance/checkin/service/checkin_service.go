// internals/features/attendance/checkin/service/checkin_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	attendanceModel "hadirku_backend/internals/features/attendance/checkin/model"
	"hadirku_backend/internals/features/attendance/geofence"
	sessionModel "hadirku_backend/internals/features/attendance/sessions/model"
)

type Config struct {
	DefaultRadiusM float64
	MaxRadiusM     float64
}

// CheckInService: koordinator satu attempt check-in.
// Semua langkah read-only / pure kecuali write record di akhir.
type CheckInService struct {
	cfg      Config
	sessions SessionStore
	orgs     OrganizationStore
	members  MembershipStore
	records  AttendanceStore
	clock    Clock
}

func NewCheckInService(cfg Config, sessions SessionStore, orgs OrganizationStore, members MembershipStore, records AttendanceStore, clock Clock) *CheckInService {
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.DefaultRadiusM <= 0 {
		cfg.DefaultRadiusM = 100
	}
	return &CheckInService{
		cfg:      cfg,
		sessions: sessions,
		orgs:     orgs,
		members:  members,
		records:  records,
		clock:    clock,
	}
}

type CheckInInput struct {
	SessionID uuid.UUID
	MemberID  uuid.UUID
	Location  geofence.Coordinate
	// Force: escape hatch admin — skip cek state & membership,
	// dipakai untuk check-in atas nama member.
	Force bool
	Meta  map[string]any
}

type CheckOutInput struct {
	RecordID uuid.UUID
	// ActorID: pemanggil; harus pemilik record kecuali Force.
	ActorID  uuid.UUID
	Location geofence.Coordinate
	// Force: admin boleh check-out atas nama member lain.
	Force bool
}

type PresencePreview struct {
	Status    attendanceModel.AttendanceStatus `json:"status"`
	DistanceM float64                          `json:"distance_m"`
	HasFence  bool                             `json:"has_fence"`
}

// CheckIn menjalankan state machine + evaluasi geofence, lalu tulis record.
func (s *CheckInService) CheckIn(ctx context.Context, in CheckInInput) (*attendanceModel.AttendanceRecordModel, error) {
	// 1) Load session
	sess, err := s.sessions.FindByID(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	// 2) State check (kecuali force)
	if !in.Force {
		switch sess.StateAt(now) {
		case sessionModel.SessionScheduled:
			return nil, ErrSessionNotStarted
		case sessionModel.SessionClosed:
			return nil, ErrSessionClosed
		}
	}

	// 3) Membership check (kecuali force)
	if !in.Force {
		ok, err := s.members.IsMember(ctx, sess.SessionOrgID, in.MemberID)
		if err != nil {
			return nil, errors.Join(ErrPersistence, err)
		}
		if !ok {
			return nil, ErrOrganizationMismatch
		}
	}

	// 4) Idempotency pre-check; index DB tetap jadi guard terakhir saat race
	if _, err := s.records.FindBySessionAndMember(ctx, in.SessionID, in.MemberID); err == nil {
		return nil, ErrDuplicateCheckIn
	} else if !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}

	// 5) Validasi lokasi
	if err := in.Location.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidLocation, err)
	}

	// 6) Evaluasi presence (fence sesi menang; fallback fence organisasi)
	fence, err := s.resolveFence(ctx, sess)
	if err != nil {
		return nil, err
	}
	presence, distance, err := geofence.EvaluatePresence(in.Location, fence)
	if err != nil {
		return nil, errors.Join(ErrInvalidLocation, err)
	}

	status := attendanceModel.AttendanceStatus(presence)
	if presence == geofence.PresencePresent && s.isLate(sess, now) {
		status = attendanceModel.AttendanceLate
	}

	// 7) Persist (atomic create-or-fail di store)
	rec := &attendanceModel.AttendanceRecordModel{
		AttendanceRecordID:          uuid.New(),
		AttendanceRecordSessionID:   in.SessionID,
		AttendanceRecordMemberID:    in.MemberID,
		AttendanceRecordOrgID:       sess.SessionOrgID,
		AttendanceRecordStatus:      status,
		AttendanceRecordDistanceM:   distance,
		AttendanceRecordLat:         in.Location.Lat.Float(),
		AttendanceRecordLng:         in.Location.Lng.Float(),
		AttendanceRecordCheckedInAt: now,
	}
	if len(in.Meta) > 0 {
		rec.AttendanceRecordMeta = datatypes.JSONMap(in.Meta)
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	// 8) Return record
	return rec, nil
}

// CheckOut stamp waktu+lokasi keluar. Status TIDAK dihitung ulang.
func (s *CheckInService) CheckOut(ctx context.Context, in CheckOutInput) (*attendanceModel.AttendanceRecordModel, error) {
	rec, err := s.records.FindByID(ctx, in.RecordID)
	if err != nil {
		return nil, err
	}
	// record member lain disembunyikan, bukan 403 — UUID bocor
	// tidak boleh jadi konfirmasi keberadaan record
	if !in.Force && rec.AttendanceRecordMemberID != in.ActorID {
		return nil, ErrRecordNotFound
	}
	if rec.AttendanceRecordCheckedOutAt != nil {
		return nil, ErrAlreadyCheckedOut
	}
	if err := in.Location.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidLocation, err)
	}

	now := s.clock.Now()
	lat := in.Location.Lat.Float()
	lng := in.Location.Lng.Float()
	rec.AttendanceRecordCheckedOutAt = &now
	rec.AttendanceRecordCheckoutLat = &lat
	rec.AttendanceRecordCheckoutLng = &lng

	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// PreviewPresence: keputusan presence tanpa menulis record (untuk dashboard).
func (s *CheckInService) PreviewPresence(ctx context.Context, sessionID uuid.UUID, loc geofence.Coordinate) (*PresencePreview, error) {
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := loc.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidLocation, err)
	}
	fence, err := s.resolveFence(ctx, sess)
	if err != nil {
		return nil, err
	}
	presence, distance, err := geofence.EvaluatePresence(loc, fence)
	if err != nil {
		return nil, errors.Join(ErrInvalidLocation, err)
	}
	return &PresencePreview{
		Status:    attendanceModel.AttendanceStatus(presence),
		DistanceM: distance,
		HasFence:  fence != nil,
	}, nil
}

func (s *CheckInService) resolveFence(ctx context.Context, sess *sessionModel.SessionModel) (*geofence.GeoFence, error) {
	if f := sess.Fence(s.cfg.DefaultRadiusM); f != nil {
		return s.clampFence(f), nil
	}
	if s.orgs == nil {
		return nil, nil
	}
	org, err := s.orgs.FindByID(ctx, sess.SessionOrgID)
	if err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}
	if org == nil {
		return nil, nil
	}
	return s.clampFence(org.Fence(s.cfg.DefaultRadiusM)), nil
}

// clampFence batasi radius ke maksimum konfigurasi.
func (s *CheckInService) clampFence(f *geofence.GeoFence) *geofence.GeoFence {
	if f == nil {
		return nil
	}
	if s.cfg.MaxRadiusM > 0 && f.RadiusM > s.cfg.MaxRadiusM {
		f.RadiusM = s.cfg.MaxRadiusM
	}
	return f
}

func (s *CheckInService) isLate(sess *sessionModel.SessionModel, now time.Time) bool {
	if sess.SessionLateGraceMin <= 0 {
		return false
	}
	grace := time.Duration(sess.SessionLateGraceMin) * time.Minute
	return now.After(sess.SessionStartsAt.Add(grace))
}
