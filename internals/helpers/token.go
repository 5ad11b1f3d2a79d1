// file: internals/helpers/token.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrNoUserInToken = errors.New("user_id tidak ada di token")
)

// GetUserIDFromToken ambil user_id yang diset AuthMiddleware di locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoUserInToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoUserInToken
	}
	return id, nil
}

// GetRoleFromToken ambil role global user ("user"/"admin"/"owner").
func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}

// IsPrivileged: boleh pakai force check-in / kelola sesi.
func IsPrivileged(c *fiber.Ctx) bool {
	switch GetRoleFromToken(c) {
	case "admin", "owner", "teacher":
		return true
	default:
		return false
	}
}
