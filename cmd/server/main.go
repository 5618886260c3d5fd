package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autoxpert/feedback-backend/internal/api/routes"
	"github.com/autoxpert/feedback-backend/internal/config"
	"github.com/autoxpert/feedback-backend/internal/metrics"
	"github.com/autoxpert/feedback-backend/internal/services"
	"github.com/autoxpert/feedback-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger.Init(cfg.Environment)

	registry := metrics.NewRegistry()

	catalog := services.NewCatalogService()
	if err := catalog.Seed(services.DefaultStores(), services.DefaultProducts()); err != nil {
		logger.Fatal("Failed to seed catalog: ", err)
	}

	classifier := services.NewSentimentService(cfg, metrics.NewClassifierMetrics(registry))
	feedbackService := services.NewFeedbackService(catalog, classifier, metrics.NewFeedbackMetrics(registry))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, routes.Dependencies{
		Catalog:    catalog,
		Feedback:   feedbackService,
		Classifier: classifier,
		Registry:   registry,
	}, cfg)

	baseCtx, cancelRequests := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	done := runGracefulShutdown(srv, cancelRequests, cfg.ShutdownTimeout)

	logger.WithFields(logger.Fields{
		"port":          cfg.Port,
		"sentiment_api": cfg.SentimentAPIURL,
	}).Info("Server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server: ", err)
	}

	<-done
}

// runGracefulShutdown stops the server on SIGINT/SIGTERM. Requests still running
// when the timeout expires have their contexts cancelled, so any classification
// they are waiting on is discarded instead of applied.
func runGracefulShutdown(srv *http.Server, cancelRequests context.CancelFunc, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error: ", err)
		}
		cancelRequests()

		close(done)
	}()

	return done
}
