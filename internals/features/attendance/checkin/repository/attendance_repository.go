// internals/features/attendance/checkin/repository/attendance_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/checkin/model"
	"hadirku_backend/internals/features/attendance/checkin/service"
)

// AttendanceRepository: implementasi GORM dari service.AttendanceStore.
// Index unik (session_id, member_id) di DB adalah guard terakhir terhadap
// race dua check-in bersamaan untuk pasangan yang sama.
type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

func (r *AttendanceRepository) FindBySessionAndMember(ctx context.Context, sessionID, memberID uuid.UUID) (*model.AttendanceRecordModel, error) {
	var rec model.AttendanceRecordModel
	err := r.DB.WithContext(ctx).
		Where("attendance_record_session_id = ? AND attendance_record_member_id = ?", sessionID, memberID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrRecordNotFound
		}
		return nil, errors.Join(service.ErrPersistence, err)
	}
	return &rec, nil
}

func (r *AttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceRecordModel, error) {
	var rec model.AttendanceRecordModel
	err := r.DB.WithContext(ctx).
		Where("attendance_record_id = ?", id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrRecordNotFound
		}
		return nil, errors.Join(service.ErrPersistence, err)
	}
	return &rec, nil
}

func (r *AttendanceRepository) Create(ctx context.Context, rec *model.AttendanceRecordModel) error {
	if err := r.DB.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicateKey(err) {
			return service.ErrDuplicateCheckIn
		}
		return errors.Join(service.ErrPersistence, err)
	}
	return nil
}

func (r *AttendanceRepository) Update(ctx context.Context, rec *model.AttendanceRecordModel) error {
	if err := r.DB.WithContext(ctx).Save(rec).Error; err != nil {
		return errors.Join(service.ErrPersistence, err)
	}
	return nil
}

// isDuplicateKey deteksi unique violation Postgres (SQLSTATE 23505).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// fallback: sebagian driver hanya mengekspos pesan
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}
