// internals/features/attendance/checkin/route/checkin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkinController "hadirku_backend/internals/features/attendance/checkin/controller"
	"hadirku_backend/internals/middlewares"
)

// UserCheckinRoutes: member check-in/check-out atas nama sendiri.
func UserCheckinRoutes(r fiber.Router, db *gorm.DB) {
	ctl := checkinController.NewCheckInController(db)

	att := r.Group("/attendance")
	att.Post("/check-in", middlewares.CheckInRateLimiter(), ctl.CheckIn)
	att.Post("/records/:record_id/check-out", ctl.CheckOut)
	att.Post("/presence/preview", ctl.PreviewPresence)
	att.Get("/me", ctl.MyAttendance)
}

// AdminCheckinRoutes: surface admin/teacher (force, atas nama member, rekap).
func AdminCheckinRoutes(r fiber.Router, db *gorm.DB) {
	ctl := checkinController.NewCheckInController(db)

	att := r.Group("/attendance")
	att.Post("/check-in", ctl.CheckIn)
	att.Get("/sessions/:session_id/records", ctl.ListBySession)
}
