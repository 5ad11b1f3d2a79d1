// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	authModel "hadirku_backend/internals/features/users/auth/model"
	userModel "hadirku_backend/internals/features/users/user/model"
)

const (
	AccessTTL  = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

var ErrMissingSecret = errors.New("JWT secret belum diset")

// CreateAccessToken buat access JWT (claims: sub, user_name, role).
func CreateAccessToken(u *userModel.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

// CreateRefreshToken buat refresh JWT + simpan hash-nya (bukan token mentah).
func CreateRefreshToken(db *gorm.DB, u *userModel.UserModel) (string, error) {
	if configs.JWTRefreshSecret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": u.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(RefreshTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", err
	}

	row := authModel.RefreshTokenModel{
		UserID:    u.ID,
		Token:     ComputeRefreshHash(token, configs.JWTRefreshSecret),
		ExpiresAt: now.Add(RefreshTTL),
	}
	if err := db.Create(&row).Error; err != nil {
		return "", err
	}
	return token, nil
}

// ComputeRefreshHash: HMAC-SHA256 supaya DB tidak menyimpan refresh token mentah.
func ComputeRefreshHash(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// RotateRefreshToken hapus hash lama; dipanggil saat refresh berhasil.
func RotateRefreshToken(db *gorm.DB, rawToken string) error {
	h := ComputeRefreshHash(rawToken, configs.JWTRefreshSecret)
	return db.Where("token = ?", h).Delete(&authModel.RefreshTokenModel{}).Error
}

// RefreshTokenKnown cek hash refresh ada di DB dan belum expired.
func RefreshTokenKnown(db *gorm.DB, rawToken string) (bool, error) {
	h := ComputeRefreshHash(rawToken, configs.JWTRefreshSecret)
	var count int64
	err := db.Model(&authModel.RefreshTokenModel{}).
		Where("token = ? AND expires_at > ?", h, time.Now()).
		Count(&count).Error
	return count > 0, err
}

// BlacklistToken masukkan access token ke blacklist (dipakai logout).
func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	row := authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiredAt,
	}
	return db.Create(&row).Error
}
