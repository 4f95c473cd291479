package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/middleware"
	"github.com/omrannajeeb/leohol/models"
)

// AddReview attaches a customer review to a product and refreshes the cached
// average rating.
func AddReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		if userID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input struct {
			Rating  int    `json:"rating" binding:"required,min=1,max=5"`
			Comment string `json:"comment" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		review := models.Review{
			ProductID: product.ID,
			UserID:    *userID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
			return
		}

		refreshRating(db, product.ID)
		c.JSON(http.StatusCreated, review)
	}
}

// ReportReview flags a review for moderation.
func ReportReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID, err := strconv.ParseUint(c.Param("reviewID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
			return
		}

		result := db.Model(&models.Review{}).Where("id = ?", reviewID).Update("reported", true)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to report review"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review reported"})
	}
}

// DeleteReview removes a review (admin moderation) and refreshes the rating.
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID, err := strconv.ParseUint(c.Param("reviewID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
			return
		}

		var review models.Review
		if err := db.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
			return
		}

		if err := db.Delete(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}

		refreshRating(db, review.ProductID)
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}

func refreshRating(db *gorm.DB, productID uint) {
	var avg float64
	db.Model(&models.Review{}).Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg)
	db.Model(&models.Product{}).Where("id = ?", productID).Update("rating", avg)
}
