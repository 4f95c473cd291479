package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/models"
)

type productUpdateInput struct {
	Name          *string      `json:"name"`
	Description   *string      `json:"description"`
	Price         *float64     `json:"price"`
	OriginalPrice *float64     `json:"original_price"`
	CategoryID    *uint        `json:"category_id"`
	Images        *[]string    `json:"images"`
	Sizes         *[]sizeInput `json:"sizes"`
	Stock         *int         `json:"stock"`
	IsFeatured    *bool        `json:"is_featured"`
	IsNew         *bool        `json:"is_new"`
}

// UpdateProduct applies a partial update; images and sizes, when present,
// replace the existing sets.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Sizes").Preload("Images").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input productUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.OriginalPrice != nil {
			product.OriginalPrice = *input.OriginalPrice
		}
		if input.CategoryID != nil {
			product.CategoryID = input.CategoryID
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.IsFeatured != nil {
			product.IsFeatured = *input.IsFeatured
		}
		if input.IsNew != nil {
			product.IsNew = *input.IsNew
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if input.Images != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
					return err
				}
				product.Images = nil
				for i, url := range *input.Images {
					product.Images = append(product.Images, models.ProductImage{ProductID: product.ID, URL: url, Position: i})
				}
			}
			if input.Sizes != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.SizeVariant{}).Error; err != nil {
					return err
				}
				product.Sizes = nil
				for _, s := range *input.Sizes {
					product.Sizes = append(product.Sizes, models.SizeVariant{ProductID: product.ID, Name: s.Name, Stock: s.Stock})
				}
			}
			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// UpdateCategory renames a category or swaps its image.
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var input struct {
			Name  *string `json:"name"`
			Image *string `json:"image"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Name != nil {
			category.Name = *input.Name
		}
		if input.Image != nil {
			category.Image = *input.Image
		}

		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}
