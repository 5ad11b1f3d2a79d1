// internals/features/attendance/checkin/controller/attendance_list_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attDTO "hadirku_backend/internals/features/attendance/checkin/dto"
	attModel "hadirku_backend/internals/features/attendance/checkin/model"
	helper "hadirku_backend/internals/helpers"
)

const dateLayout = "2006-01-02"

// buildListQuery susun query listing dengan filter/sort.
func (ctl *CheckInController) buildListQuery(c *fiber.Ctx, q attDTO.ListAttendanceQuery, sessionID uuid.UUID) (*gorm.DB, error) {
	tx := ctl.DB.WithContext(c.UserContext()).Model(&attModel.AttendanceRecordModel{}).
		Where("attendance_record_session_id = ?", sessionID)

	if q.MemberID != nil && strings.TrimSpace(*q.MemberID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*q.MemberID))
		if err != nil {
			return nil, helper.JsonError(c, fiber.StatusBadRequest, "member_id tidak valid")
		}
		tx = tx.Where("attendance_record_member_id = ?", id)
	}
	if q.Status != nil && strings.TrimSpace(*q.Status) != "" {
		s := attModel.AttendanceStatus(strings.ToLower(strings.TrimSpace(*q.Status)))
		if !s.Valid() {
			return nil, helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid (present/absent/late)")
		}
		tx = tx.Where("attendance_record_status = ?", s)
	}
	if q.CreatedFrom != nil && strings.TrimSpace(*q.CreatedFrom) != "" {
		t, err := time.Parse(dateLayout, strings.TrimSpace(*q.CreatedFrom))
		if err != nil {
			return nil, helper.JsonError(c, fiber.StatusBadRequest, "created_from invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("attendance_record_checked_in_at >= ?", t)
	}
	if q.CreatedTo != nil && strings.TrimSpace(*q.CreatedTo) != "" {
		t, err := time.Parse(dateLayout, strings.TrimSpace(*q.CreatedTo))
		if err != nil {
			return nil, helper.JsonError(c, fiber.StatusBadRequest, "created_to invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("attendance_record_checked_in_at < ?", t.Add(24*time.Hour))
	}

	order := "attendance_record_checked_in_at DESC"
	if q.Sort != nil && strings.EqualFold(strings.TrimSpace(*q.Sort), "checked_in_asc") {
		order = "attendance_record_checked_in_at ASC"
	}
	return tx.Order(order), nil
}

/*
=========================================================
GET /attendance/sessions/:session_id/records  (admin/teacher)
=========================================================
*/
func (ctl *CheckInController) ListBySession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session_id tidak valid")
	}

	var q attDTO.ListAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	tx, err := ctl.buildListQuery(c, q, sessionID)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []attModel.AttendanceRecordModel
	if err := tx.Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/*
=========================================================
GET /attendance/me  (member: riwayat kehadiran sendiri)
=========================================================
*/
func (ctl *CheckInController) MyAttendance(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	tx := ctl.DB.WithContext(c.UserContext()).Model(&attModel.AttendanceRecordModel{}).
		Where("attendance_record_member_id = ?", userID).
		Order("attendance_record_checked_in_at DESC")

	if raw := strings.TrimSpace(c.Query("org_id")); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "org_id tidak valid")
		}
		tx = tx.Where("attendance_record_org_id = ?", orgID)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []attModel.AttendanceRecordModel
	if err := tx.Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
