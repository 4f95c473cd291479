package inventoryControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/middleware"
	"github.com/omrannajeeb/leohol/models"
)

// GetInventory lists ledger rows, optionally filtered by product.
func GetInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("product_id, size, color")
		if productStr := c.Query("product"); productStr != "" {
			productID, err := strconv.ParseUint(productStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
				return
			}
			query = query.Where("product_id = ?", productID)
		}

		var rows []models.Inventory
		if err := query.Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// CreateInventory adds a ledger row for a (product, size, color) key.
func CreateInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ProductID uint   `json:"product_id" binding:"required"`
			Size      string `json:"size"`
			Color     string `json:"color"`
			Quantity  int    `json:"quantity" binding:"min=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}

		row := models.Inventory{
			ProductID: input.ProductID,
			Size:      input.Size,
			Color:     input.Color,
			Quantity:  input.Quantity,
			UpdatedBy: middleware.UserID(c),
		}
		if err := db.Create(&row).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory record"})
			return
		}
		c.JSON(http.StatusCreated, row)
	}
}

// UpdateInventoryQuantity sets a ledger row to an absolute quantity.
func UpdateInventoryQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory ID"})
			return
		}

		var input struct {
			Quantity int `json:"quantity" binding:"min=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Inventory{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"quantity":   input.Quantity,
				"updated_by": middleware.UserID(c),
			})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory record not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Inventory updated"})
	}
}
