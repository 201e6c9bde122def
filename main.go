package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wefix/config"
	"wefix/database"
	"wefix/geocode"
	"wefix/handlers"
	"wefix/location"
	"wefix/metrics"
	"wefix/rabbitmq"
	"wefix/service"
	"wefix/vision"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.SetLevelFromString(cfg.LogLevel)

	metrics.Register()

	// Initialize database
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize pipeline components
	modelPaths := vision.DefaultModelPaths
	if cfg.ModelPath != "" {
		modelPaths = []string{cfg.ModelPath}
	}
	classifier := vision.NewClassifier(modelPaths)
	geocoder := geocode.NewClient(cfg.NominatimBaseURL, cfg.GeocodeTimeout)
	extractor := location.NewExtractor(geocoder)

	// Initialize event publishing; the service degrades to logging when
	// no broker is configured.
	publisher, err := rabbitmq.NewPublisher(cfg.AMQPUrl, cfg.AMQPExchange)
	if err != nil {
		log.Errorf("Failed to connect to RabbitMQ, continuing without events: %v", err)
		publisher = nil
	}

	svc := service.New(cfg, db, classifier, extractor, publisher)
	svc.Start()

	// Setup HTTP server
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.New(svc).Register(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Infof("Starting HTTP server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	svc.Stop()

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
