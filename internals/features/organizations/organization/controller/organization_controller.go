// internals/features/organizations/organization/controller/organization_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	orgDTO "hadirku_backend/internals/features/organizations/organization/dto"
	orgModel "hadirku_backend/internals/features/organizations/organization/model"
	helper "hadirku_backend/internals/helpers"
)

type OrganizationController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewOrganizationController(db *gorm.DB) *OrganizationController {
	return &OrganizationController{
		DB:        db,
		Validator: validator.New(),
	}
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}

/*
=========================================================
POST /organizations
Pembuat otomatis jadi member role admin.
=========================================================
*/
func (ctl *OrganizationController) CreateOrganization(c *fiber.Ctx) error {
	var req orgDTO.CreateOrganizationRequest
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

	if (req.Lat == nil) != (req.Lng == nil) {
		return helper.JsonError(c, fiber.StatusBadRequest, "lat dan lng harus diisi bersamaan")
	}
	if req.RadiusM != nil && *req.RadiusM > configs.GeofenceMaxRadiusM {
		return helper.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("radius_m maksimum %v meter", configs.GeofenceMaxRadiusM))
	}

	org := orgModel.OrganizationModel{
		OrganizationName:      strings.TrimSpace(req.Name),
		OrganizationSlug:      strings.TrimSpace(req.Slug),
		OrganizationCreatedBy: userID,
	}
	if req.Lat != nil {
		lat, lng := req.Lat.Float(), req.Lng.Float()
		org.OrganizationLat = &lat
		org.OrganizationLng = &lng
	}
	if req.RadiusM != nil {
		org.OrganizationRadiusM = req.RadiusM
	}

	// org + membership admin dalam satu transaksi
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		member := orgModel.OrganizationMemberModel{
			OrgMemberOrgID:  org.OrganizationID,
			OrgMemberUserID: userID,
			OrgMemberRole:   orgModel.MemberRoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Slug organisasi sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat organisasi")
	}
	return helper.JsonCreated(c, "Organisasi berhasil dibuat", org)
}

/*
=========================================================
GET /organizations/:org_id
=========================================================
*/
func (ctl *OrganizationController) GetOrganization(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "org_id tidak valid")
	}

	var org orgModel.OrganizationModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("organization_id = ?", orgID).
		First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Organisasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil organisasi")
	}
	return helper.JsonOK(c, "OK", org)
}

/*
=========================================================
POST /organizations/:org_id/members  (admin org)
=========================================================
*/
func (ctl *OrganizationController) AddMember(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "org_id tidak valid")
	}

	var req orgDTO.AddMemberRequest
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
	if err := ctl.ensureOrgAdmin(c, orgID, userID); err != nil {
		return err
	}

	role := orgModel.MemberRole(req.Role)
	if req.Role == "" {
		role = orgModel.MemberRoleMember
	}
	member := orgModel.OrganizationMemberModel{
		OrgMemberOrgID:  orgID,
		OrgMemberUserID: req.UserID,
		OrgMemberRole:   role,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&member).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "User sudah jadi member")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menambah member")
	}
	return helper.JsonCreated(c, "Member berhasil ditambahkan", member)
}

/*
=========================================================
GET /organizations/:org_id/members  (admin org, paginated)
=========================================================
*/
func (ctl *OrganizationController) ListMembers(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "org_id tidak valid")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if err := ctl.ensureOrgAdmin(c, orgID, userID); err != nil {
		return err
	}

	tx := ctl.DB.WithContext(c.UserContext()).Model(&orgModel.OrganizationMemberModel{}).
		Where("org_member_org_id = ?", orgID).
		Order("org_member_created_at ASC")

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []orgModel.OrganizationMemberModel
	if err := tx.Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctl *OrganizationController) ensureOrgAdmin(c *fiber.Ctx, orgID, userID uuid.UUID) error {
	if role := helper.GetRoleFromToken(c); role == "owner" {
		return nil
	}
	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&orgModel.OrganizationMemberModel{}).
		Where("org_member_org_id = ? AND org_member_user_id = ? AND org_member_role = ?",
			orgID, userID, orgModel.MemberRoleAdmin).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusForbidden, "Anda bukan admin organisasi ini")
	}
	return nil
}
