// internals/features/attendance/sessions/controller/session_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	"hadirku_backend/internals/features/attendance/geofence"
	sessionDTO "hadirku_backend/internals/features/attendance/sessions/dto"
	sessionModel "hadirku_backend/internals/features/attendance/sessions/model"
	orgModel "hadirku_backend/internals/features/organizations/organization/model"
	helper "hadirku_backend/internals/helpers"
)

type SessionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{
		DB:        db,
		Validator: validator.New(),
	}
}

func geofenceCoord(lat, lng float64) geofence.Coordinate {
	return geofence.Coordinate{Lat: geofence.Degrees(lat), Lng: geofence.Degrees(lng)}
}

// Pastikan caller admin/teacher di organisasi target (tenant-safe)
func (ctl *SessionController) ensurePrivilegedInOrg(c *fiber.Ctx, orgID, userID uuid.UUID) error {
	if role := helper.GetRoleFromToken(c); role == "owner" {
		return nil
	}
	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&orgModel.OrganizationMemberModel{}).
		Where("org_member_org_id = ? AND org_member_user_id = ? AND org_member_role IN ?",
			orgID, userID, []orgModel.MemberRole{orgModel.MemberRoleAdmin, orgModel.MemberRoleTeacher}).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusForbidden, "Anda bukan admin/teacher di organisasi ini")
	}
	return nil
}

/*
=========================================================
POST /sessions  (admin/teacher)
=========================================================
*/
func (ctl *SessionController) CreateSession(c *fiber.Ctx) error {
	var req sessionDTO.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if err := ctl.ensurePrivilegedInOrg(c, req.OrgID, userID); err != nil {
		return err
	}

	// fence harus lengkap (lat+lng) atau kosong dua-duanya
	if (req.Lat == nil) != (req.Lng == nil) {
		return helper.JsonError(c, fiber.StatusBadRequest, "lat dan lng harus diisi bersamaan")
	}
	if req.Lat != nil {
		coord := geofenceCoord(req.Lat.Float(), req.Lng.Float())
		if err := coord.Validate(); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Koordinat tidak valid")
		}
	}
	if req.RadiusM != nil && *req.RadiusM > configs.GeofenceMaxRadiusM {
		return helper.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("radius_m maksimum %v meter", configs.GeofenceMaxRadiusM))
	}

	sess := sessionModel.SessionModel{
		SessionOrgID:        req.OrgID,
		SessionTitle:        strings.TrimSpace(req.Title),
		SessionCreatedBy:    userID,
		SessionStartsAt:     req.StartsAt,
		SessionEndsAt:       req.EndsAt,
		SessionIsActive:     true,
		SessionLateGraceMin: req.LateGraceMin,
	}
	if req.Lat != nil {
		lat, lng := req.Lat.Float(), req.Lng.Float()
		sess.SessionLat = &lat
		sess.SessionLng = &lng
	}
	if req.RadiusM != nil {
		sess.SessionRadiusM = req.RadiusM
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&sess).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat session")
	}
	return helper.JsonCreated(c, "Session berhasil dibuat", sess)
}

/*
=========================================================
PATCH /sessions/:session_id/active  (admin/teacher)
Toggle tutup paksa — is_active=false menutup sesi seketika.
=========================================================
*/
func (ctl *SessionController) ToggleActive(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session_id tidak valid")
	}

	var req sessionDTO.ToggleActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var sess sessionModel.SessionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("session_id = ?", sessionID).
		First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Session tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil session")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if err := ctl.ensurePrivilegedInOrg(c, sess.SessionOrgID, userID); err != nil {
		return err
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&sess).
		Update("session_is_active", *req.IsActive).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update session")
	}
	sess.SessionIsActive = *req.IsActive
	return helper.JsonUpdated(c, "Session berhasil diupdate", sess)
}

/*
=========================================================
GET /sessions/:session_id
=========================================================
*/
func (ctl *SessionController) GetSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session_id tidak valid")
	}

	var sess sessionModel.SessionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("session_id = ?", sessionID).
		First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Session tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil session")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"session": sess,
		"state":   sess.StateAt(time.Now()),
	})
}

/*
=========================================================
GET /sessions?org_id=&state=  (paginated)
=========================================================
*/
func (ctl *SessionController) ListSessions(c *fiber.Ctx) error {
	var q sessionDTO.ListSessionQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	orgID, err := uuid.Parse(strings.TrimSpace(q.OrgID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "org_id wajib dan harus valid")
	}

	now := time.Now()
	tx := ctl.DB.WithContext(c.UserContext()).Model(&sessionModel.SessionModel{}).
		Where("session_org_id = ?", orgID)

	if q.State != nil {
		switch strings.ToLower(strings.TrimSpace(*q.State)) {
		case string(sessionModel.SessionScheduled):
			tx = tx.Where("session_is_active = TRUE AND session_starts_at > ?", now)
		case string(sessionModel.SessionOpen):
			tx = tx.Where("session_is_active = TRUE AND session_starts_at <= ? AND session_ends_at > ?", now, now)
		case string(sessionModel.SessionClosed):
			tx = tx.Where("session_is_active = FALSE OR session_ends_at <= ?", now)
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, "state tidak valid (scheduled/open/closed)")
		}
	}
	tx = tx.Order("session_starts_at DESC")

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []sessionModel.SessionModel
	if err := tx.Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/*
=========================================================
DELETE /sessions/:session_id  (admin/teacher, soft delete)
Record kehadiran ikut terhapus via FK cascade di DB.
=========================================================
*/
func (ctl *SessionController) DeleteSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "session_id tidak valid")
	}

	var sess sessionModel.SessionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("session_id = ?", sessionID).
		First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Session tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil session")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if err := ctl.ensurePrivilegedInOrg(c, sess.SessionOrgID, userID); err != nil {
		return err
	}

	if err := ctl.DB.WithContext(c.UserContext()).Delete(&sess).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus session")
	}
	return helper.JsonOK(c, "Session berhasil dihapus", nil)
}
