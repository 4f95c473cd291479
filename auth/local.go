package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/models"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func authResponse(user *models.User, accessToken string, refresh *models.RefreshToken) gin.H {
	return gin.H{
		"token":         accessToken,
		"refresh_token": refresh.Token,
		"user": gin.H{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"role":    user.Role,
			"picture": user.Picture,
		},
	}
}

func issuePair(c *gin.Context, db *gorm.DB, user *models.User, status int) {
	access, err := issueAccessToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	refresh, err := issueRefreshToken(db, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue refresh token"})
		return
	}
	c.JSON(status, authResponse(user, access, refresh))
}

// RegisterHandler creates a local account and signs the user in.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		email := strings.ToLower(req.Email)

		var existing models.User
		if err := db.First(&existing, "email = ?", email).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
			return
		}

		user := models.User{
			ID:       uuid.NewString(),
			Name:     req.Name,
			Email:    email,
			Password: string(hash),
			Role:     models.RoleUser,
			Provider: "local",
		}
		if err := db.Create(&user).Error; err != nil {
			zap.L().Error("create user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
			return
		}

		issuePair(c, db, &user, http.StatusCreated)
	}
}

// LoginHandler authenticates a local account.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		email := strings.ToLower(req.Email)

		var user models.User
		if err := db.First(&user, "email = ?", email).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if user.Password == "" ||
			bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		issuePair(c, db, &user, http.StatusOK)
	}
}

// RefreshHandler rotates the refresh token and issues a new access token.
func RefreshHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fresh, user, err := rotateRefreshToken(db, req.RefreshToken)
		if err != nil {
			if errors.Is(err, errRefreshTokenInvalid) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
			return
		}

		access, err := issueAccessToken(user.ID, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, authResponse(user, access, fresh))
	}
}

// LogoutHandler revokes a refresh token.
func LogoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db.Delete(&models.RefreshToken{}, "token = ?", req.RefreshToken)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// PromoteToAdminHandler grants the admin role. Allowed when no admin exists
// yet (bootstrap) or when the configured setup token is presented.
func PromoteToAdminHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email  string `json:"email" binding:"required"`
			Secret string `json:"secret"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}

		var adminCount int64
		if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to promote user"})
			return
		}

		configured := os.Getenv("ADMIN_SETUP_TOKEN")
		secretOk := configured != "" && req.Secret == configured
		if adminCount > 0 && !secretOk {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin already exists. Provide valid secret to promote."})
			return
		}

		var user models.User
		if err := db.First(&user, "email = ?", strings.ToLower(req.Email)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if err := db.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to promote user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email, "role": models.RoleAdmin})
	}
}
