package maintenanceControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/config"
	"github.com/omrannajeeb/leohol/models"
)

var redeployClient = &http.Client{Timeout: 10 * time.Second}

// GetMaintenanceStatus reports whether the storefront is in maintenance mode.
func GetMaintenanceStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.Settings
		err := db.First(&settings).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch maintenance status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"maintenance_mode": settings.MaintenanceMode})
	}
}

// SetMaintenanceMode toggles maintenance mode on the settings row (admin).
func SetMaintenanceMode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Enabled *bool `json:"enabled" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "enabled is required"})
			return
		}

		var settings models.Settings
		if err := db.FirstOrCreate(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		if err := db.Model(&settings).Update("maintenance_mode", *input.Enabled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update maintenance mode"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"maintenance_mode": *input.Enabled})
	}
}

// TriggerRedeploy fires the hosting provider's deploy hook (admin). The hook
// is fire-and-forget: the provider rebuilds asynchronously.
func TriggerRedeploy(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.RenderDeployHookURL == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Deploy hook is not configured"})
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, cfg.RenderDeployHookURL, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to trigger redeploy"})
			return
		}
		resp, err := redeployClient.Do(req)
		if err != nil {
			zap.L().Error("deploy hook call failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to trigger redeploy"})
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusBadRequest {
			zap.L().Error("deploy hook rejected", zap.Int("status", resp.StatusCode))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Deploy hook rejected the request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Redeploy triggered"})
	}
}
