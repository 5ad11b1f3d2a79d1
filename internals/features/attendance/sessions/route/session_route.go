// internals/features/attendance/sessions/route/session_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionController "hadirku_backend/internals/features/attendance/sessions/controller"
)

// UserSessionRoutes: member lihat sesi.
func UserSessionRoutes(r fiber.Router, db *gorm.DB) {
	ctl := sessionController.NewSessionController(db)

	s := r.Group("/sessions")
	s.Get("/", ctl.ListSessions)
	s.Get("/:session_id", ctl.GetSession)
}

// AdminSessionRoutes: kelola sesi (buat, toggle, hapus).
func AdminSessionRoutes(r fiber.Router, db *gorm.DB) {
	ctl := sessionController.NewSessionController(db)

	s := r.Group("/sessions")
	s.Post("/", ctl.CreateSession)
	s.Patch("/:session_id/active", ctl.ToggleActive)
	s.Delete("/:session_id", ctl.DeleteSession)
}
