package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/models"
)

type sizeInput struct {
	Name  string `json:"name" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
}

type productInput struct {
	Name          string      `json:"name" binding:"required"`
	Description   string      `json:"description"`
	Price         float64     `json:"price" binding:"required,gt=0"`
	OriginalPrice float64     `json:"original_price"`
	CategoryID    *uint       `json:"category_id"`
	Images        []string    `json:"images"`
	Sizes         []sizeInput `json:"sizes"`
	Stock         int         `json:"stock" binding:"min=0"`
	IsFeatured    bool        `json:"is_featured"`
	IsNew         bool        `json:"is_new"`
}

// CreateProduct adds a catalog entry with optional size variants and image
// URLs. When variants are given the aggregate stock is derived from them.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			Price:         input.Price,
			OriginalPrice: input.OriginalPrice,
			CategoryID:    input.CategoryID,
			Stock:         input.Stock,
			IsFeatured:    input.IsFeatured,
			IsNew:         input.IsNew,
		}
		for i, url := range input.Images {
			product.Images = append(product.Images, models.ProductImage{URL: url, Position: i})
		}
		for _, s := range input.Sizes {
			product.Sizes = append(product.Sizes, models.SizeVariant{Name: s.Name, Stock: s.Stock})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// CreateCategory adds a category.
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name  string `json:"name" binding:"required"`
			Image string `json:"image"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		category := models.Category{Name: input.Name, Image: input.Image}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}
