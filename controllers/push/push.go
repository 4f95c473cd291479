package pushControllers

import (
	"encoding/json"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omrannajeeb/leohol/config"
	"github.com/omrannajeeb/leohol/middleware"
	"github.com/omrannajeeb/leohol/models"
)

type subscribeInput struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

// Subscribe stores (or refreshes) a browser push subscription.
func Subscribe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input subscribeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sub := models.PushSubscription{
			UserID:   middleware.UserID(c),
			Endpoint: input.Endpoint,
			P256dh:   input.Keys.P256dh,
			Auth:     input.Keys.Auth,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "user_id"}),
		}).Create(&sub).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
	}
}

// Unsubscribe removes a push endpoint.
func Unsubscribe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Endpoint string `json:"endpoint" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db.Delete(&models.PushSubscription{}, "endpoint = ?", input.Endpoint)
		c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
	}
}

// Broadcast pushes a payload to every stored subscription (admin), pruning
// endpoints the push service reports as gone.
func Broadcast(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title string `json:"title" binding:"required"`
			Body  string `json:"body"`
			URL   string `json:"url"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var subs []models.PushSubscription
		if err := db.Find(&subs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
			return
		}

		payload, _ := json.Marshal(input)
		options := &webpush.Options{
			Subscriber:      cfg.VAPIDSubject,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             60,
		}

		sent, removed := 0, 0
		for i := range subs {
			resp, err := webpush.SendNotification(payload, &webpush.Subscription{
				Endpoint: subs[i].Endpoint,
				Keys: webpush.Keys{
					P256dh: subs[i].P256dh,
					Auth:   subs[i].Auth,
				},
			}, options)
			if err != nil {
				zap.L().Warn("push send failed", zap.Error(err))
				continue
			}
			if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
				db.Delete(&subs[i])
				removed++
			} else {
				sent++
			}
			resp.Body.Close()
		}

		c.JSON(http.StatusOK, gin.H{"sent": sent, "removed": removed})
	}
}
