// internals/features/organizations/organization/route/organization_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgController "hadirku_backend/internals/features/organizations/organization/controller"
)

// UserOrganizationRoutes: semua user login boleh bikin/lihat organisasi.
func UserOrganizationRoutes(r fiber.Router, db *gorm.DB) {
	ctl := orgController.NewOrganizationController(db)

	o := r.Group("/organizations")
	o.Post("/", ctl.CreateOrganization)
	o.Get("/:org_id", ctl.GetOrganization)
}

// AdminOrganizationRoutes: kelola membership.
func AdminOrganizationRoutes(r fiber.Router, db *gorm.DB) {
	ctl := orgController.NewOrganizationController(db)

	o := r.Group("/organizations")
	o.Post("/:org_id/members", ctl.AddMember)
	o.Get("/:org_id/members", ctl.ListMembers)
}
