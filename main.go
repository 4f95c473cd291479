package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/config"
	"github.com/omrannajeeb/leohol/logger"
	"github.com/omrannajeeb/leohol/middleware"
	"github.com/omrannajeeb/leohol/models"
	"github.com/omrannajeeb/leohol/realtime"
	"github.com/omrannajeeb/leohol/routes"
	"github.com/omrannajeeb/leohol/services/orders"
	"github.com/omrannajeeb/leohol/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("starting application", zap.String("env", cfg.Env))

	db := initDatabase(cfg, log)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Product{},
		&models.SizeVariant{},
		&models.ProductImage{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.Inventory{},
		&models.Recipient{},
		&models.Settings{},
		&models.ShippingZone{},
		&models.ShippingRate{},
		&models.DeliveryCompany{},
		&models.PushSubscription{},
	); err != nil {
		log.Fatal("auto-migrate failed", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	// CORS settings
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	// Wire the order service on top of the store layer.
	st := store.New(db, log)
	hub := realtime.NewHub(log)
	svc := orders.NewService(st, st, st, st, hub, log)

	routes.SetupRoutes(r, db, cfg, svc, hub)

	log.Info("server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// initDatabase opens the GORM connection. TranslateError is on so driver
// uniqueness violations surface as gorm.ErrDuplicatedKey.
func initDatabase(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	return db
}
