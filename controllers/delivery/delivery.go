package deliveryControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/models"
)

type companyInput struct {
	Name          string `json:"name" binding:"required"`
	APIBaseURL    string `json:"api_base_url"`
	APIKey        string `json:"api_key"`
	FieldMappings string `json:"field_mappings"`
	IsActive      *bool  `json:"is_active"`
}

// CreateCompany registers a delivery provider (admin).
func CreateCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input companyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		company := models.DeliveryCompany{
			Name:          input.Name,
			APIBaseURL:    input.APIBaseURL,
			APIKey:        input.APIKey,
			FieldMappings: input.FieldMappings,
			IsActive:      true,
		}
		if input.IsActive != nil {
			company.IsActive = *input.IsActive
		}
		if err := db.Create(&company).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create delivery company"})
			return
		}
		c.JSON(http.StatusCreated, company)
	}
}

// GetCompanies lists delivery providers (admin).
func GetCompanies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var companies []models.DeliveryCompany
		if err := db.Find(&companies).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch delivery companies"})
			return
		}
		c.JSON(http.StatusOK, companies)
	}
}

// UpdateCompany applies a partial provider update (admin).
func UpdateCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID"})
			return
		}

		var company models.DeliveryCompany
		if err := db.First(&company, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery company not found"})
			return
		}

		var input companyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		company.Name = input.Name
		if input.APIBaseURL != "" {
			company.APIBaseURL = input.APIBaseURL
		}
		if input.APIKey != "" {
			company.APIKey = input.APIKey
		}
		if input.FieldMappings != "" {
			company.FieldMappings = input.FieldMappings
		}
		if input.IsActive != nil {
			company.IsActive = *input.IsActive
		}

		if err := db.Save(&company).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery company"})
			return
		}
		c.JSON(http.StatusOK, company)
	}
}

// DeleteCompany removes a provider (admin). Orders keep their linkage.
func DeleteCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID"})
			return
		}
		result := db.Delete(&models.DeliveryCompany{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete delivery company"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery company not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Delivery company deleted"})
	}
}

// AssignToOrder links an order to an active delivery company and sets the
// delivery sub-status to "assigned" (admin).
func AssignToOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			OrderID        uint    `json:"order_id" binding:"required"`
			CompanyID      uint    `json:"company_id" binding:"required"`
			TrackingNumber string  `json:"tracking_number"`
			Fee            float64 `json:"fee"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var company models.DeliveryCompany
		if err := db.First(&company, input.CompanyID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery company not found"})
			return
		}
		if !company.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery company is not active"})
			return
		}

		var order models.Order
		if err := db.First(&order, input.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		now := time.Now()
		assigned := models.DeliveryStatusAssigned
		order.DeliveryCompanyID = &company.ID
		order.DeliveryStatus = &assigned
		order.DeliveryTrackingNumber = input.TrackingNumber
		order.DeliveryFee = input.Fee
		order.DeliveryAssignedAt = &now

		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign delivery company"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Delivery company assigned", "order": order})
	}
}
