// internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "hadirku_backend/internals/features/users/auth/route"
)

func AuthRoutes(public fiber.Router, authed fiber.Router, db *gorm.DB) {
	authRoute.AuthRoutes(public, authed, db)
}
