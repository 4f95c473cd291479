package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.POST("/google", auth.GoogleLoginHandler(db))
		authGroup.POST("/refresh", auth.RefreshHandler(db))
		authGroup.POST("/logout", auth.LogoutHandler(db))

		// First-admin bootstrap, then guarded by the setup token.
		authGroup.POST("/promote", auth.PromoteToAdminHandler(db))
	}
}
