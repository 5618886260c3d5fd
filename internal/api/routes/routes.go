package routes

import (
	"github.com/autoxpert/feedback-backend/internal/api/handlers"
	"github.com/autoxpert/feedback-backend/internal/api/middleware"
	"github.com/autoxpert/feedback-backend/internal/config"
	"github.com/autoxpert/feedback-backend/internal/metrics"
	"github.com/autoxpert/feedback-backend/internal/services"
	"github.com/autoxpert/feedback-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies are the services the router hands out to handlers.
type Dependencies struct {
	Catalog    *services.CatalogService
	Feedback   *services.FeedbackService
	Classifier services.Classifier
	Registry   *prometheus.Registry
}

func SetupRoutes(router *gin.Engine, deps Dependencies, cfg *config.Config) {
	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RateLimitMiddleware(cfg))

	// Initialize handlers
	feedbackHandler := handlers.NewFeedbackHandler(deps.Feedback)
	storeHandler := handlers.NewStoreHandler(deps.Catalog, deps.Feedback)
	productHandler := handlers.NewProductHandler(deps.Catalog, deps.Feedback)
	sentimentHandler := handlers.NewSentimentHandler(deps.Classifier)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})
	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(deps.Registry)))
	}

	// API routes
	api := router.Group("/api/v1")

	stores := api.Group("/stores")
	{
		stores.GET("", storeHandler.ListStores)
		stores.POST("", storeHandler.RegisterStore)
		stores.GET("/:store_id", storeHandler.GetStore)
		stores.POST("/:store_id/products", storeHandler.AddProduct)
		stores.GET("/:store_id/feedback", feedbackHandler.GetStoreFeedback)
		stores.POST("/:store_id/feedback", feedbackHandler.SubmitStoreFeedback)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.SearchProducts)
		products.GET("/:product_id", productHandler.GetProduct)
		products.GET("/:product_id/feedback", feedbackHandler.GetProductFeedback)
		products.POST("/:product_id/feedback", feedbackHandler.SubmitProductFeedback)
	}

	api.POST("/sentiment", sentimentHandler.Analyze)

	logger.Info("Routes initialized successfully")
}
