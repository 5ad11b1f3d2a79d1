// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	authDTO "hadirku_backend/internals/features/users/auth/dto"
	authService "hadirku_backend/internals/features/users/auth/service"
	userModel "hadirku_backend/internals/features/users/user/model"
	helper "hadirku_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctl *AuthController) issueTokens(c *fiber.Ctx, u *userModel.UserModel) error {
	access, err := authService.CreateAccessToken(u)
	if err != nil {
		log.Println("[ERROR] create access token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	refresh, err := authService.CreateRefreshToken(ctl.DB, u)
	if err != nil {
		log.Println("[ERROR] create refresh token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	// refresh via cookie httpOnly; access dikirim di body
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Expires:  time.Now().Add(authService.RefreshTTL),
	})

	return helper.JsonOK(c, "Login berhasil", authDTO.TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(authService.AccessTTL.Seconds()),
	})
}

/*
=========================================================
POST /auth/register
=========================================================
*/
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u := userModel.UserModel{
		UserName: strings.TrimSpace(req.UserName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Role:     "user",
		IsActive: true,
	}
	if err := u.SetPassword(req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&u).Error; err != nil {
		s := strings.ToLower(err.Error())
		if strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftar")
	}
	return helper.JsonCreated(c, "Pendaftaran berhasil", fiber.Map{
		"id":        u.ID,
		"user_name": u.UserName,
		"email":     u.Email,
	})
}

/*
=========================================================
POST /auth/login
=========================================================
*/
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var u userModel.UserModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}
	if !u.CheckPassword(req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !u.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	return ctl.issueTokens(c, &u)
}

/*
=========================================================
POST /auth/login/google
Verifikasi id_token Google, buat user kalau belum ada.
=========================================================
*/
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid: "+err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Google login belum dikonfigurasi")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "id_token Google tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "id_token Google tidak bisa dibaca")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	googleID := claimSet.Sub

	var u userModel.UserModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("google_id = ? OR email = ?", googleID, email).
		First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = userModel.UserModel{
			UserName: claimSet.Name,
			Email:    email,
			GoogleID: &googleID,
			Role:     "user",
			IsActive: true,
		}
		// akun Google tidak punya password lokal; isi random hash
		if err := u.SetPassword(googleID + time.Now().String()); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
		}
		if err := ctl.DB.WithContext(c.UserContext()).Create(&u).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
		}
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}

	if !u.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if u.GoogleID == nil {
		_ = ctl.DB.WithContext(c.UserContext()).Model(&u).Update("google_id", googleID).Error
	}

	return ctl.issueTokens(c, &u)
}

/*
=========================================================
POST /auth/refresh-token  (cookie refresh_token)
=========================================================
*/
func (ctl *AuthController) RefreshToken(c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}
	if configs.JWTRefreshSecret == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Refresh secret belum diset")
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)

	known, err := authService.RefreshTokenKnown(ctl.DB, refreshCookie)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !known {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}

	var u userModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).Where("id = ?", sub).First(&u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !u.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	// ROTATE: hapus hash lama sebelum terbit yang baru
	if err := authService.RotateRefreshToken(ctl.DB, refreshCookie); err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	return ctl.issueTokens(c, &u)
}

/*
=========================================================
POST /auth/logout
Access token masuk blacklist sampai expired.
=========================================================
*/
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return helper.JsonError(c, fiber.StatusBadRequest, "Authorization header tidak valid")
	}
	token := strings.TrimSpace(parts[1])

	// exp dari claims menentukan kapan row blacklist boleh dibersihkan
	expiredAt := time.Now().Add(authService.AccessTTL)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if expFloat, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(expFloat), 0)
		}
	}

	if err := authService.BlacklistToken(ctl.DB, token, expiredAt); err != nil {
		s := strings.ToLower(err.Error())
		if !strings.Contains(s, "duplicate key") && !strings.Contains(s, "unique constraint") {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}
