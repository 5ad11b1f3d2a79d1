// internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "hadirku_backend/internals/middlewares/auth"
	routeDetails "hadirku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT (register, login, refresh)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// PRIVATE (USER) → wajib JWT
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// ADMIN → JWT + role admin/teacher/owner
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.IsAdminOrTeacher(),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Auth routes...")
	routeDetails.AuthRoutes(public, private, db)

	log.Println("[INFO] Mounting Organization routes...")
	routeDetails.OrganizationUserRoutes(private, db)
	routeDetails.OrganizationAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Attendance routes...")
	routeDetails.AttendanceUserRoutes(private, db)
	routeDetails.AttendanceAdminRoutes(admin, db)
}
