package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wovenlabs/store-api/app/checkout"
	"github.com/wovenlabs/store-api/app/orders"
	"github.com/wovenlabs/store-api/app/products"
	"github.com/wovenlabs/store-api/app/variants"
	"github.com/wovenlabs/store-api/config"
	"github.com/wovenlabs/store-api/events"
	"github.com/wovenlabs/store-api/metrics"
	"github.com/wovenlabs/store-api/middleware"
	"github.com/wovenlabs/store-api/models"
	"github.com/wovenlabs/store-api/payment"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("database connection failed: ", err)
	}

	if err := db.AutoMigrate(
		&models.Store{},
		&models.Category{},
		&models.Size{},
		&models.Color{},
		&models.Product{},
		&models.Image{},
		&models.Variant{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatal("migration failed: ", err)
	}

	storesRepo := models.NewStoresRepository(db)
	productsRepo := models.NewProductsRepository(db)
	variantsRepo := models.NewVariantsRepository(db)
	ordersRepo := models.NewOrdersRepository(db)

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	assembler := checkout.NewAssembler(
		storesRepo,
		ordersRepo,
		payment.NewStripeProvider(cfg.StripeAPIKey),
		publisher,
		cfg.FrontendStoreURL,
		logger,
	)

	productsHandler := products.NewHandler(productsRepo, logger)
	variantsHandler := variants.NewHandler(variants.NewReconciler(variantsRepo), variantsRepo, logger)
	ordersHandler := orders.NewHandler(ordersRepo, logger)
	checkoutHandler := checkout.NewHandler(assembler, logger)

	serverMetrics := metrics.NewServerMetrics("backend")

	r := gin.Default()
	r.Use(serverMetrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	storefront := r.Group("/api/:storeId", middleware.CORS())
	{
		storefront.GET("/products", productsHandler.HandleList)
		storefront.GET("/products/:productId", productsHandler.HandleGet)
		storefront.GET("/product/:variantId", variantsHandler.HandleStorefrontGet)
		storefront.POST("/checkout", checkoutHandler.HandleCheckout)
		storefront.OPTIONS("/checkout", func(c *gin.Context) {})
	}

	admin := r.Group("/api/:storeId")
	admin.Use(middleware.Auth(cfg.JWTSecret), middleware.StoreOwner(storesRepo))
	{
		admin.POST("/products", productsHandler.HandleCreate)
		admin.PATCH("/products/:productId", productsHandler.HandleUpdate)
		admin.DELETE("/products/:productId", productsHandler.HandleDelete)

		admin.GET("/products/:productId/variants", variantsHandler.HandleList)
		admin.PATCH("/products/:productId/variants", variantsHandler.HandleReconcile)

		admin.GET("/orders", ordersHandler.HandleList)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
