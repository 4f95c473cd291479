package settingsControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/models"
)

// loadOrInit returns the single settings row, creating it with defaults on
// first access.
func loadOrInit(db *gorm.DB) (*models.Settings, error) {
	var settings models.Settings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{}
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetSettings returns the store configuration (public: the storefront reads
// theme and currency from here).
func GetSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := loadOrInit(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

type settingsInput struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Currency        *string `json:"currency"`
	Timezone        *string `json:"timezone"`
	Logo            *string `json:"logo"`
	PrimaryColor    *string `json:"primary_color"`
	SecondaryColor  *string `json:"secondary_color"`
	AccentColor     *string `json:"accent_color"`
	TextColor       *string `json:"text_color"`
	BackgroundColor *string `json:"background_color"`
}

// UpdateSettings applies a partial update (admin). The default currency must
// stay inside the supported set.
func UpdateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := loadOrInit(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}

		var input settingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Currency != nil {
			if !models.IsSupportedCurrency(*input.Currency) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency"})
				return
			}
			settings.Currency = *input.Currency
		}
		if input.Name != nil {
			settings.Name = *input.Name
		}
		if input.Email != nil {
			settings.Email = *input.Email
		}
		if input.Phone != nil {
			settings.Phone = *input.Phone
		}
		if input.Address != nil {
			settings.Address = *input.Address
		}
		if input.Timezone != nil {
			settings.Timezone = *input.Timezone
		}
		if input.Logo != nil {
			settings.Logo = *input.Logo
		}
		if input.PrimaryColor != nil {
			settings.PrimaryColor = *input.PrimaryColor
		}
		if input.SecondaryColor != nil {
			settings.SecondaryColor = *input.SecondaryColor
		}
		if input.AccentColor != nil {
			settings.AccentColor = *input.AccentColor
		}
		if input.TextColor != nil {
			settings.TextColor = *input.TextColor
		}
		if input.BackgroundColor != nil {
			settings.BackgroundColor = *input.BackgroundColor
		}

		if err := db.Save(settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
