// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"
)

// OnlyRoles batasi akses berdasarkan role global di token.
func OnlyRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Akses ditolak untuk role ini")
		}
		return c.Next()
	}
}

// IsAdminOrTeacher guard untuk surface admin (kelola sesi, force check-in).
func IsAdminOrTeacher() fiber.Handler {
	return OnlyRoles("admin", "owner", "teacher")
}
