package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/David-19-dev/abdouperformence-sub001/internal/application"
	"github.com/David-19-dev/abdouperformence-sub001/internal/auth"
	"github.com/David-19-dev/abdouperformence-sub001/internal/config"
	"github.com/David-19-dev/abdouperformence-sub001/internal/database"
	"github.com/David-19-dev/abdouperformence-sub001/internal/events"
	"github.com/David-19-dev/abdouperformence-sub001/internal/handler"
	"github.com/David-19-dev/abdouperformence-sub001/internal/health"
	"github.com/David-19-dev/abdouperformence-sub001/internal/logger"
	"github.com/David-19-dev/abdouperformence-sub001/internal/middleware"
	"github.com/David-19-dev/abdouperformence-sub001/internal/projection"
	"github.com/David-19-dev/abdouperformence-sub001/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "coaching-backoffice")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting coaching-backoffice",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.BookingModel{},
			&repository.PostModel{},
			&repository.CommentModel{},
			&repository.ProductModel{},
			&repository.UserModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 12*time.Hour)

	// Initialize Kafka producer for the change feed
	producer := events.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	postRepo := repository.NewGormPostRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	// Initialize application services
	bookingService := application.NewBookingService(bookingRepo, producer, log)
	blogService := application.NewBlogService(postRepo, commentRepo, log)
	shopService := application.NewShopService(productRepo, log)
	authService := application.NewAuthService(userRepo, jwtManager, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bootstrap the admin account on first run
	if email := os.Getenv("COACHING_ADMIN_EMAIL"); email != "" {
		if err := authService.EnsureAdmin(ctx, "Admin", email, os.Getenv("COACHING_ADMIN_PASSWORD")); err != nil {
			log.Error("failed to ensure admin account", zap.Error(err))
		}
	}

	// Start the live calendar feed
	groupID := cfg.KafkaConfig.GroupPrefix + "calendar-feed"
	feed := projection.NewFeed(cfg.KafkaConfig.Brokers, groupID, bookingRepo, log)
	defer func() { _ = feed.Close() }()

	go func() {
		log.Info("starting calendar feed consumer")
		if err := feed.Start(ctx); err != nil && err != context.Canceled {
			log.Error("calendar feed error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	adminBookingHandler := handler.NewAdminBookingHandler(bookingService, feed)
	blogHandler := handler.NewBlogHandler(blogService)
	shopHandler := handler.NewShopHandler(shopService)
	authHandler := handler.NewAuthHandler(authService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "coaching-backoffice")
	healthHandler.RegisterRoutes(router)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup)
	bookingHandler.RegisterRoutes(&router.RouterGroup)
	adminBookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	blogHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	shopHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down coaching-backoffice...")

	// Cancel the feed context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("coaching-backoffice stopped")
}
