package shippingControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/models"
)

var errNoShippingOption = errors.New("no applicable shipping rates found")

// CalculateFee returns the cheapest applicable rate for a destination and
// order profile, or an error when nothing covers it.
func CalculateFee(db *gorm.DB, country string, subtotal, weight float64) (float64, error) {
	var zones []models.ShippingZone
	if err := db.Preload("Rates").Find(&zones).Error; err != nil {
		return 0, err
	}

	best := -1.0
	for i := range zones {
		if !zones[i].MatchesCountry(country) {
			continue
		}
		for j := range zones[i].Rates {
			if cost, ok := zones[i].Rates[j].Cost(subtotal, weight); ok {
				if best < 0 || cost < best {
					best = cost
				}
			}
		}
	}
	if best < 0 {
		return 0, errNoShippingOption
	}
	return best, nil
}

// CalculateFeeHandler exposes fee calculation to the storefront checkout.
func CalculateFeeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Country  string  `json:"country" binding:"required"`
			Subtotal float64 `json:"subtotal"`
			Weight   float64 `json:"weight"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fee, err := CalculateFee(db, req.Country, req.Subtotal, req.Weight)
		if err != nil {
			if errors.Is(err, errNoShippingOption) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No shipping rates found for the specified location"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate shipping fee"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fee": fee})
	}
}

// ----- Zone CRUD (admin) -----

type zoneInput struct {
	Name      string `json:"name" binding:"required"`
	Countries string `json:"countries" binding:"required"` // comma-separated ISO codes
}

func CreateZone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input zoneInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zone := models.ShippingZone{Name: input.Name, Countries: input.Countries}
		if err := db.Create(&zone).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shipping zone"})
			return
		}
		c.JSON(http.StatusCreated, zone)
	}
}

func GetZones(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var zones []models.ShippingZone
		if err := db.Preload("Rates").Find(&zones).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shipping zones"})
			return
		}
		c.JSON(http.StatusOK, zones)
	}
}

func UpdateZone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone ID"})
			return
		}

		var zone models.ShippingZone
		if err := db.First(&zone, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipping zone not found"})
			return
		}

		var input zoneInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zone.Name = input.Name
		zone.Countries = input.Countries

		if err := db.Save(&zone).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shipping zone"})
			return
		}
		c.JSON(http.StatusOK, zone)
	}
}

func DeleteZone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone ID"})
			return
		}
		result := db.Delete(&models.ShippingZone{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shipping zone"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipping zone not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Shipping zone deleted"})
	}
}

// ----- Rate CRUD (admin) -----

type rateInput struct {
	ZoneID      uint    `json:"zone_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Method      string  `json:"method" binding:"required"`
	BaseCost    float64 `json:"base_cost" binding:"min=0"`
	PerKgCost   float64 `json:"per_kg_cost" binding:"min=0"`
	MinSubtotal float64 `json:"min_subtotal" binding:"min=0"`
	MaxSubtotal float64 `json:"max_subtotal" binding:"min=0"`
	MinWeight   float64 `json:"min_weight" binding:"min=0"`
	MaxWeight   float64 `json:"max_weight" binding:"min=0"`
}

func CreateRate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input rateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var zone models.ShippingZone
		if err := db.First(&zone, input.ZoneID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping zone does not exist"})
			return
		}

		rate := models.ShippingRate{
			ZoneID:      input.ZoneID,
			Name:        input.Name,
			Method:      input.Method,
			BaseCost:    input.BaseCost,
			PerKgCost:   input.PerKgCost,
			MinSubtotal: input.MinSubtotal,
			MaxSubtotal: input.MaxSubtotal,
			MinWeight:   input.MinWeight,
			MaxWeight:   input.MaxWeight,
		}
		if err := db.Create(&rate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shipping rate"})
			return
		}
		c.JSON(http.StatusCreated, rate)
	}
}

func DeleteRate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rate ID"})
			return
		}
		result := db.Delete(&models.ShippingRate{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shipping rate"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipping rate not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Shipping rate deleted"})
	}
}
