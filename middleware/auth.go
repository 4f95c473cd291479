package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/omrannajeeb/leohol/models"
)

func parseBearer(c *gin.Context) (jwt.MapClaims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, errors.New("authorization header is missing")
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ValidateToken requires a valid bearer token and stores the caller identity
// on the context.
func ValidateToken(c *gin.Context) {
	claims, err := parseBearer(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	c.Set("user_id", claims["user_id"])
	c.Set("role", claims["role"])
	c.Next()
}

// OptionalToken resolves the caller identity when a valid bearer token is
// present but never rejects the request. Checkout uses this so a broken or
// missing token means guest, not failure.
func OptionalToken(c *gin.Context) {
	if claims, err := parseBearer(c); err == nil {
		c.Set("user_id", claims["user_id"])
		c.Set("role", claims["role"])
	}
	c.Next()
}

// RequireAdmin must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}

// UserID returns the soft-resolved user id, nil for guests.
func UserID(c *gin.Context) *string {
	v, ok := c.Get("user_id")
	if !ok {
		return nil
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return nil
	}
	return &id
}
