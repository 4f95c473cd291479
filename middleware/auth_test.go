package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func identityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/soft", OptionalToken, func(c *gin.Context) {
		if id := UserID(c); id != nil {
			c.JSON(http.StatusOK, gin.H{"user_id": *id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	})
	r.GET("/hard", ValidateToken, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin", ValidateToken, RequireAdmin, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestOptionalTokenAllowsGuests(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := identityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/soft", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": null}`, w.Body.String())
}

func TestOptionalTokenIgnoresBrokenTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := identityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/soft", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "a broken token must not block checkout")
	assert.JSONEq(t, `{"user_id": null}`, w.Body.String())
}

func TestOptionalTokenResolvesIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := identityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/soft", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", "user"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": "user-1"}`, w.Body.String())
}

func TestValidateTokenRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := identityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := identityRouter()

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := other.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hard", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := identityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", "user"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin-1", "admin"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
