// internals/route/details/attendance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkinRoute "hadirku_backend/internals/features/attendance/checkin/route"
	sessionRoute "hadirku_backend/internals/features/attendance/sessions/route"
)

func AttendanceUserRoutes(r fiber.Router, db *gorm.DB) {
	sessionRoute.UserSessionRoutes(r, db)
	checkinRoute.UserCheckinRoutes(r, db)
}

func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	sessionRoute.AdminSessionRoutes(r, db)
	checkinRoute.AdminCheckinRoutes(r, db)
}
