package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceModel "hadirku_backend/internals/features/attendance/checkin/model"
	"hadirku_backend/internals/features/attendance/geofence"
	sessionModel "hadirku_backend/internals/features/attendance/sessions/model"
	orgModel "hadirku_backend/internals/features/organizations/organization/model"
)

/* ===============================
   Fakes in-memory
=================================*/

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeSessionStore struct {
	sessions map[uuid.UUID]*sessionModel.SessionModel
}

func (s *fakeSessionStore) FindByID(_ context.Context, id uuid.UUID) (*sessionModel.SessionModel, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, ErrSessionNotFound
}

type fakeOrgStore struct {
	orgs map[uuid.UUID]*orgModel.OrganizationModel
}

func (s *fakeOrgStore) FindByID(_ context.Context, id uuid.UUID) (*orgModel.OrganizationModel, error) {
	return s.orgs[id], nil
}

type fakeMembershipStore struct {
	members map[uuid.UUID]map[uuid.UUID]bool // orgID → userID set
	err     error
}

func (s *fakeMembershipStore) IsMember(_ context.Context, orgID, userID uuid.UUID) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.members[orgID][userID], nil
}

type sessionMemberKey struct{ sessionID, memberID uuid.UUID }

type fakeAttendanceStore struct {
	byKey     map[sessionMemberKey]*attendanceModel.AttendanceRecordModel
	byID      map[uuid.UUID]*attendanceModel.AttendanceRecordModel
	createErr error
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		byKey: map[sessionMemberKey]*attendanceModel.AttendanceRecordModel{},
		byID:  map[uuid.UUID]*attendanceModel.AttendanceRecordModel{},
	}
}

func (s *fakeAttendanceStore) FindBySessionAndMember(_ context.Context, sessionID, memberID uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
	if rec, ok := s.byKey[sessionMemberKey{sessionID, memberID}]; ok {
		return rec, nil
	}
	return nil, ErrRecordNotFound
}

func (s *fakeAttendanceStore) FindByID(_ context.Context, id uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
	if rec, ok := s.byID[id]; ok {
		return rec, nil
	}
	return nil, ErrRecordNotFound
}

func (s *fakeAttendanceStore) Create(_ context.Context, rec *attendanceModel.AttendanceRecordModel) error {
	if s.createErr != nil {
		return s.createErr
	}
	key := sessionMemberKey{rec.AttendanceRecordSessionID, rec.AttendanceRecordMemberID}
	if _, exists := s.byKey[key]; exists {
		return ErrDuplicateCheckIn // perilaku unique index
	}
	s.byKey[key] = rec
	s.byID[rec.AttendanceRecordID] = rec
	return nil
}

func (s *fakeAttendanceStore) Update(_ context.Context, rec *attendanceModel.AttendanceRecordModel) error {
	if _, ok := s.byID[rec.AttendanceRecordID]; !ok {
		return ErrRecordNotFound
	}
	s.byID[rec.AttendanceRecordID] = rec
	return nil
}

/* ===============================
   Fixture
=================================*/

var (
	officeLat = 40.7128
	officeLng = -74.0060
	radius50  = 50.0

	atOffice = geofence.Coordinate{Lat: 40.7128, Lng: -74.0060}
	farAway  = geofence.Coordinate{Lat: 40.7500, Lng: -74.0060} // ~4 km
)

type fixture struct {
	svc      *CheckInService
	sessions *fakeSessionStore
	orgs     *fakeOrgStore
	members  *fakeMembershipStore
	records  *fakeAttendanceStore
	clock    fixedClock

	orgID     uuid.UUID
	sessionID uuid.UUID
	memberID  uuid.UUID
}

// newFixture: sesi open (mulai 1 jam lalu, selesai 1 jam lagi), fence kantor
// radius 50 m, member sudah terdaftar di organisasi.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		orgID:     uuid.New(),
		sessionID: uuid.New(),
		memberID:  uuid.New(),
	}
	f.clock = fixedClock{now: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)}

	sess := &sessionModel.SessionModel{
		SessionID:       f.sessionID,
		SessionOrgID:    f.orgID,
		SessionTitle:    "Kajian Pagi",
		SessionStartsAt: f.clock.now.Add(-time.Hour),
		SessionEndsAt:   f.clock.now.Add(time.Hour),
		SessionIsActive: true,
		SessionLat:      &officeLat,
		SessionLng:      &officeLng,
		SessionRadiusM:  &radius50,
	}
	f.sessions = &fakeSessionStore{sessions: map[uuid.UUID]*sessionModel.SessionModel{f.sessionID: sess}}
	f.orgs = &fakeOrgStore{orgs: map[uuid.UUID]*orgModel.OrganizationModel{}}
	f.members = &fakeMembershipStore{members: map[uuid.UUID]map[uuid.UUID]bool{
		f.orgID: {f.memberID: true},
	}}
	f.records = newFakeAttendanceStore()

	f.svc = NewCheckInService(
		Config{DefaultRadiusM: 100, MaxRadiusM: 1000},
		f.sessions, f.orgs, f.members, f.records, f.clock,
	)
	return f
}

func (f *fixture) session() *sessionModel.SessionModel {
	return f.sessions.sessions[f.sessionID]
}

func (f *fixture) checkIn(loc geofence.Coordinate) (*attendanceModel.AttendanceRecordModel, error) {
	return f.svc.CheckIn(context.Background(), CheckInInput{
		SessionID: f.sessionID,
		MemberID:  f.memberID,
		Location:  loc,
	})
}

/* ===============================
   CheckIn
=================================*/

func TestCheckIn_Success(t *testing.T) {
	f := newFixture(t)

	rec, err := f.checkIn(atOffice)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendancePresent, rec.AttendanceRecordStatus)
	assert.Equal(t, 0.0, rec.AttendanceRecordDistanceM)
	assert.Equal(t, f.orgID, rec.AttendanceRecordOrgID)
	assert.Equal(t, f.clock.now, rec.AttendanceRecordCheckedInAt)
}

func TestCheckIn_OutsideFenceIsAbsent(t *testing.T) {
	f := newFixture(t)

	rec, err := f.checkIn(farAway)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendanceAbsent, rec.AttendanceRecordStatus)
	assert.Greater(t, rec.AttendanceRecordDistanceM, 50.0)
}

func TestCheckIn_SessionNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckIn(context.Background(), CheckInInput{
		SessionID: uuid.New(),
		MemberID:  f.memberID,
		Location:  atOffice,
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCheckIn_SessionNotStarted(t *testing.T) {
	f := newFixture(t)
	f.session().SessionStartsAt = f.clock.now.Add(30 * time.Minute)

	_, err := f.checkIn(atOffice)
	assert.ErrorIs(t, err, ErrSessionNotStarted)
	assert.Empty(t, f.records.byKey, "tidak boleh ada record tertulis")
}

func TestCheckIn_SessionClosed(t *testing.T) {
	f := newFixture(t)

	t.Run("past end time", func(t *testing.T) {
		f.session().SessionEndsAt = f.clock.now.Add(-time.Minute)
		_, err := f.checkIn(atOffice)
		assert.ErrorIs(t, err, ErrSessionClosed)
	})

	t.Run("deactivated by admin", func(t *testing.T) {
		f := newFixture(t)
		f.session().SessionIsActive = false
		_, err := f.checkIn(atOffice)
		assert.ErrorIs(t, err, ErrSessionClosed)
	})
}

func TestCheckIn_OrganizationMismatch(t *testing.T) {
	f := newFixture(t)
	outsider := uuid.New()

	_, err := f.svc.CheckIn(context.Background(), CheckInInput{
		SessionID: f.sessionID,
		MemberID:  outsider,
		Location:  atOffice,
	})
	assert.ErrorIs(t, err, ErrOrganizationMismatch)
}

func TestCheckIn_Duplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkIn(atOffice)
	require.NoError(t, err)

	_, err = f.checkIn(atOffice)
	assert.ErrorIs(t, err, ErrDuplicateCheckIn)
	assert.Len(t, f.records.byKey, 1)
}

func TestCheckIn_DuplicateRace_StoreIsAuthoritative(t *testing.T) {
	f := newFixture(t)
	// simulasi race: pre-check lolos tapi store menolak saat insert
	f.records.createErr = ErrDuplicateCheckIn

	_, err := f.checkIn(atOffice)
	assert.ErrorIs(t, err, ErrDuplicateCheckIn)
}

func TestCheckIn_InvalidLocation(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkIn(geofence.Coordinate{Lat: 91, Lng: 0})
	assert.ErrorIs(t, err, ErrInvalidLocation)
	assert.Empty(t, f.records.byKey)
}

func TestCheckIn_Force_BypassesStateAndMembership(t *testing.T) {
	f := newFixture(t)
	f.session().SessionEndsAt = f.clock.now.Add(-time.Minute) // closed
	outsider := uuid.New()

	rec, err := f.svc.CheckIn(context.Background(), CheckInInput{
		SessionID: f.sessionID,
		MemberID:  outsider,
		Location:  atOffice,
		Force:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendancePresent, rec.AttendanceRecordStatus)
}

func TestCheckIn_Force_DoesNotBypassDuplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.checkIn(atOffice)
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), CheckInInput{
		SessionID: f.sessionID,
		MemberID:  f.memberID,
		Location:  atOffice,
		Force:     true,
	})
	assert.ErrorIs(t, err, ErrDuplicateCheckIn)
}

func TestCheckIn_LateAfterGrace(t *testing.T) {
	f := newFixture(t)
	f.session().SessionLateGraceMin = 15 // mulai 1 jam lalu → sudah lewat grace

	rec, err := f.checkIn(atOffice)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendanceLate, rec.AttendanceRecordStatus)
}

func TestCheckIn_WithinGraceStaysPresent(t *testing.T) {
	f := newFixture(t)
	f.session().SessionStartsAt = f.clock.now.Add(-10 * time.Minute)
	f.session().SessionLateGraceMin = 15

	rec, err := f.checkIn(atOffice)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendancePresent, rec.AttendanceRecordStatus)
}

func TestCheckIn_AbsentNeverUpgradedToLate(t *testing.T) {
	f := newFixture(t)
	f.session().SessionLateGraceMin = 15

	rec, err := f.checkIn(farAway)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendanceAbsent, rec.AttendanceRecordStatus)
}

func TestCheckIn_NoFenceAnywhere_Permissive(t *testing.T) {
	f := newFixture(t)
	f.session().SessionLat = nil
	f.session().SessionLng = nil

	rec, err := f.checkIn(farAway)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendancePresent, rec.AttendanceRecordStatus)
	assert.Equal(t, 0.0, rec.AttendanceRecordDistanceM)
}

func TestCheckIn_FallsBackToOrgFence(t *testing.T) {
	f := newFixture(t)
	f.session().SessionLat = nil
	f.session().SessionLng = nil
	f.orgs.orgs[f.orgID] = &orgModel.OrganizationModel{
		OrganizationID:      f.orgID,
		OrganizationLat:     &officeLat,
		OrganizationLng:     &officeLng,
		OrganizationRadiusM: &radius50,
	}

	rec, err := f.checkIn(farAway)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendanceAbsent, rec.AttendanceRecordStatus)
}

func TestCheckIn_RadiusClampedToMax(t *testing.T) {
	f := newFixture(t)
	huge := 1e9 // radius absurd tetap dibatasi MaxRadiusM=1000
	f.session().SessionRadiusM = &huge

	rec, err := f.checkIn(farAway) // ~4 km
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendanceAbsent, rec.AttendanceRecordStatus)
}

func TestCheckIn_MembershipStoreError(t *testing.T) {
	f := newFixture(t)
	f.members.err = errors.New("connection reset")

	_, err := f.checkIn(atOffice)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestCheckIn_MetaCarriedToRecord(t *testing.T) {
	f := newFixture(t)

	rec, err := f.svc.CheckIn(context.Background(), CheckInInput{
		SessionID: f.sessionID,
		MemberID:  f.memberID,
		Location:  atOffice,
		Meta:      map[string]any{"device_id": "android-42", "gps_accuracy_m": 4.2},
	})
	require.NoError(t, err)
	assert.Equal(t, "android-42", rec.AttendanceRecordMeta["device_id"])
}

/* ===============================
   CheckOut
=================================*/

func TestCheckOut_Success(t *testing.T) {
	f := newFixture(t)

	rec, err := f.checkIn(atOffice)
	require.NoError(t, err)
	statusBefore := rec.AttendanceRecordStatus

	out, err := f.svc.CheckOut(context.Background(), CheckOutInput{
		RecordID: rec.AttendanceRecordID,
		ActorID:  f.memberID,
		Location: farAway,
	})
	require.NoError(t, err)
	require.NotNil(t, out.AttendanceRecordCheckedOutAt)
	assert.Equal(t, f.clock.now, *out.AttendanceRecordCheckedOutAt)
	assert.Equal(t, farAway.Lat.Float(), *out.AttendanceRecordCheckoutLat)
	// status TIDAK dihitung ulang saat checkout
	assert.Equal(t, statusBefore, out.AttendanceRecordStatus)
}

func TestCheckOut_Twice(t *testing.T) {
	f := newFixture(t)

	rec, err := f.checkIn(atOffice)
	require.NoError(t, err)

	_, err = f.svc.CheckOut(context.Background(), CheckOutInput{RecordID: rec.AttendanceRecordID, ActorID: f.memberID, Location: atOffice})
	require.NoError(t, err)

	_, err = f.svc.CheckOut(context.Background(), CheckOutInput{RecordID: rec.AttendanceRecordID, ActorID: f.memberID, Location: atOffice})
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestCheckOut_RecordNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckOut(context.Background(), CheckOutInput{RecordID: uuid.New(), ActorID: f.memberID, Location: atOffice})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCheckOut_InvalidLocation(t *testing.T) {
	f := newFixture(t)

	rec, err := f.checkIn(atOffice)
	require.NoError(t, err)

	_, err = f.svc.CheckOut(context.Background(), CheckOutInput{
		RecordID: rec.AttendanceRecordID,
		ActorID:  f.memberID,
		Location: geofence.Coordinate{Lat: 0, Lng: 181},
	})
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestCheckOut_OtherMembersRecordIsHidden(t *testing.T) {
	f := newFixture(t)

	rec, err := f.checkIn(atOffice)
	require.NoError(t, err)

	// member lain yang tahu UUID record tidak boleh bisa check-out,
	// dan tidak boleh dapat konfirmasi bahwa record itu ada
	_, err = f.svc.CheckOut(context.Background(), CheckOutInput{
		RecordID: rec.AttendanceRecordID,
		ActorID:  uuid.New(),
		Location: atOffice,
	})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Nil(t, rec.AttendanceRecordCheckedOutAt)
}

func TestCheckOut_Force_OnBehalfOfMember(t *testing.T) {
	f := newFixture(t)

	rec, err := f.checkIn(atOffice)
	require.NoError(t, err)

	admin := uuid.New()
	out, err := f.svc.CheckOut(context.Background(), CheckOutInput{
		RecordID: rec.AttendanceRecordID,
		ActorID:  admin,
		Location: atOffice,
		Force:    true,
	})
	require.NoError(t, err)
	assert.NotNil(t, out.AttendanceRecordCheckedOutAt)
}

/* ===============================
   PreviewPresence
=================================*/

func TestPreviewPresence(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.PreviewPresence(context.Background(), f.sessionID, atOffice)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendancePresent, p.Status)
	assert.True(t, p.HasFence)
	assert.Empty(t, f.records.byKey, "preview tidak boleh menulis record")
}

func TestPreviewPresence_NoFence(t *testing.T) {
	f := newFixture(t)
	f.session().SessionLat = nil
	f.session().SessionLng = nil

	p, err := f.svc.PreviewPresence(context.Background(), f.sessionID, farAway)
	require.NoError(t, err)
	assert.Equal(t, attendanceModel.AttendancePresent, p.Status)
	assert.False(t, p.HasFence)
}
