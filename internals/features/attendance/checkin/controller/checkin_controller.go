// internals/features/attendance/checkin/controller/checkin_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	attDTO "hadirku_backend/internals/features/attendance/checkin/dto"
	attRepo "hadirku_backend/internals/features/attendance/checkin/repository"
	attService "hadirku_backend/internals/features/attendance/checkin/service"
	helper "hadirku_backend/internals/helpers"
)

type CheckInController struct {
	DB        *gorm.DB
	Service   *attService.CheckInService
	Validator *validator.Validate
}

func NewCheckInController(db *gorm.DB) *CheckInController {
	svc := attService.NewCheckInService(
		attService.Config{
			DefaultRadiusM: configs.GeofenceDefaultRadiusM,
			MaxRadiusM:     configs.GeofenceMaxRadiusM,
		},
		attRepo.NewSessionRepository(db),
		attRepo.NewOrganizationRepository(db),
		attRepo.NewMembershipRepository(db),
		attRepo.NewAttendanceRepository(db),
		attService.SystemClock{},
	)
	return &CheckInController{
		DB:        db,
		Service:   svc,
		Validator: validator.New(),
	}
}

/*
=========================================================
POST /attendance/check-in  (member, atas nama sendiri)
POST /attendance/check-in  (route admin: boleh member_id + force)
=========================================================
*/
func (ctl *CheckInController) CheckIn(c *fiber.Ctx) error {
	var req attDTO.CheckInRequest
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

	memberID := userID
	force := false
	if helper.IsPrivileged(c) {
		// escape hatch admin: check-in atas nama member lain
		if req.MemberID != nil {
			memberID = *req.MemberID
		}
		force = req.Force
	}

	rec, err := ctl.Service.CheckIn(c.UserContext(), attService.CheckInInput{
		SessionID: req.SessionID,
		MemberID:  memberID,
		Location:  req.Coordinate(),
		Force:     force,
		Meta:      req.Meta,
	})
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Check-in berhasil", rec)
}

/*
=========================================================
POST /attendance/records/:record_id/check-out
=========================================================
*/
func (ctl *CheckInController) CheckOut(c *fiber.Ctx) error {
	recordID, err := uuid.Parse(c.Params("record_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "record_id tidak valid")
	}

	var req attDTO.CheckOutRequest
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

	rec, err := ctl.Service.CheckOut(c.UserContext(), attService.CheckOutInput{
		RecordID: recordID,
		ActorID:  userID,
		Location: req.Coordinate(),
		Force:    helper.IsPrivileged(c),
	})
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Check-out berhasil", rec)
}

/*
=========================================================
POST /attendance/presence/preview
Keputusan presence tanpa bikin record (dashboard / pre-flight client).
=========================================================
*/
func (ctl *CheckInController) PreviewPresence(c *fiber.Ctx) error {
	var req attDTO.PresencePreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	preview, err := ctl.Service.PreviewPresence(c.UserContext(), req.SessionID, req.Coordinate())
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", preview)
}

// jsonServiceError memetakan error taxonomy service → status HTTP.
func jsonServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, attService.ErrSessionNotFound),
		errors.Is(err, attService.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, attService.ErrDuplicateCheckIn),
		errors.Is(err, attService.ErrAlreadyCheckedOut):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, attService.ErrSessionNotStarted),
		errors.Is(err, attService.ErrSessionClosed):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, attService.ErrOrganizationMismatch):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, attService.ErrInvalidLocation):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}
