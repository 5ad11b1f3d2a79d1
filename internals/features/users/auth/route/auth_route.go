// internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "hadirku_backend/internals/features/users/auth/controller"
	"hadirku_backend/internals/middlewares"
)

// AuthRoutes: endpoint publik (register/login/refresh) + logout yang butuh token.
func AuthRoutes(public fiber.Router, authed fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	a := public.Group("/auth")
	a.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	a.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	a.Post("/login/google", middlewares.LoginRateLimiter(), ctl.LoginGoogle)
	a.Post("/refresh-token", ctl.RefreshToken)

	authed.Post("/auth/logout", ctl.Logout)
}
