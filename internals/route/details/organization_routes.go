// internals/route/details/organization_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgRoute "hadirku_backend/internals/features/organizations/organization/route"
)

func OrganizationUserRoutes(r fiber.Router, db *gorm.DB) {
	orgRoute.UserOrganizationRoutes(r, db)
}

func OrganizationAdminRoutes(r fiber.Router, db *gorm.DB) {
	orgRoute.AdminOrganizationRoutes(r, db)
}
