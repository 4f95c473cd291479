package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/models"
)

const (
	accessTokenTTL  = 7 * 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

var errRefreshTokenInvalid = errors.New("refresh token invalid or expired")

func issueAccessToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func issueRefreshToken(db *gorm.DB, userID string) (*models.RefreshToken, error) {
	token := &models.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := db.Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// rotateRefreshToken trades a valid refresh token for a fresh one, deleting
// the old token so it cannot be replayed.
func rotateRefreshToken(db *gorm.DB, raw string) (*models.RefreshToken, *models.User, error) {
	var stored models.RefreshToken
	if err := db.First(&stored, "token = ?", raw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errRefreshTokenInvalid
		}
		return nil, nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		db.Delete(&stored)
		return nil, nil, errRefreshTokenInvalid
	}

	var user models.User
	if err := db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, nil, errRefreshTokenInvalid
	}

	if err := db.Delete(&stored).Error; err != nil {
		return nil, nil, err
	}
	fresh, err := issueRefreshToken(db, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return fresh, &user, nil
}
