package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prohmpiriya/smart-parking/internal/di"
	"github.com/prohmpiriya/smart-parking/internal/metrics"
	"github.com/prohmpiriya/smart-parking/internal/middleware"
	"github.com/prohmpiriya/smart-parking/internal/service"
	"github.com/prohmpiriya/smart-parking/pkg/config"
	"github.com/prohmpiriya/smart-parking/pkg/database"
	"github.com/prohmpiriya/smart-parking/pkg/logger"
	pkgmiddleware "github.com/prohmpiriya/smart-parking/pkg/middleware"
	pkgredis "github.com/prohmpiriya/smart-parking/pkg/redis"
	"github.com/prohmpiriya/smart-parking/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(&logger.Config{
		Level:       cfg.App.Environment,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Smart Parking API...")

	ctx := context.Background()

	// Initialize tracing
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Fatal(fmt.Sprintf("Telemetry initialization failed: %v", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			appLog.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	if err := metrics.Init(); err != nil {
		appLog.Warn("Metrics initialization failed", zap.Error(err))
	}

	// Initialize database connection
	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info("Database connected")

	// Initialize Redis connection
	redisClient, err := pkgredis.NewClient(ctx, &pkgredis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Redis connection failed: %v", err))
	}
	defer redisClient.Close()
	appLog.Info("Redis connected")

	// Initialize Kafka event publisher, falling back to no-op so booking
	// flows never depend on the broker
	var eventPublisher service.EventPublisher = service.NewNoOpEventPublisher()
	if cfg.Kafka.Enabled {
		publisher, err := service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.Topic,
			ClientID: cfg.Kafka.ClientID,
		})
		if err != nil {
			appLog.Warn("Kafka connection failed, using no-op publisher", zap.Error(err))
		} else {
			appLog.Info("Kafka event publisher connected")
			eventPublisher = publisher
		}
	}
	defer eventPublisher.Close()

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:             db,
		Redis:          redisClient,
		EventPublisher: eventPublisher,
		AuthConfig: &service.AuthConfig{
			Secret:         cfg.JWT.Secret,
			AccessTokenTTL: cfg.JWT.AccessTokenTTL,
			Issuer:         cfg.JWT.Issuer,
		},
	})

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	router.Use(pkgmiddleware.RequestLogger())

	// Health endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	registerRoutes(router, container, cfg, redisClient)

	// HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		appLog.Info(fmt.Sprintf("Smart Parking API listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}

func registerRoutes(router *gin.Engine, container *di.Container, cfg *config.Config, redisClient *pkgredis.Client) {
	requireAuth := middleware.RequireAuth(cfg.JWT.Secret)
	requireAdmin := middleware.RequireAdmin()
	idempotency := pkgmiddleware.Idempotency(&pkgmiddleware.IdempotencyConfig{
		Redis: redisClient.Client(),
	})

	api := router.Group("/api")

	// Auth routes
	users := api.Group("/users")
	{
		users.POST("/register", container.AuthHandler.Register)
		users.POST("/login", container.AuthHandler.Login)

		users.GET("/profile", requireAuth, container.UserHandler.GetProfile)
		users.PUT("/profile", requireAuth, container.UserHandler.UpdateProfile)
		users.POST("/vehicle", requireAuth, container.UserHandler.AddVehicle)
		users.DELETE("/vehicle/:id", requireAuth, container.UserHandler.RemoveVehicle)

		users.GET("", requireAuth, requireAdmin, container.UserHandler.ListUsers)
		users.DELETE("/:id", requireAuth, requireAdmin, container.UserHandler.DeleteUser)
	}

	// Booking routes
	bookings := api.Group("/bookings")
	bookings.Use(requireAuth)
	{
		bookings.POST("", idempotency, container.BookingHandler.CreateBooking)
		bookings.GET("/my-bookings", container.BookingHandler.ListMyBookings)
		bookings.GET("", requireAdmin, container.BookingHandler.ListAllBookings)
		bookings.GET("/:id", container.BookingHandler.GetBooking)
		bookings.PUT("/:id/complete", container.BookingHandler.CompleteBooking)
		bookings.PUT("/:id/cancel", container.BookingHandler.CancelBooking)
		bookings.PUT("/:id/status", requireAdmin, container.BookingHandler.UpdateBookingStatus)
	}

	// Parking routes. Reads are public, writes are admin only.
	parking := api.Group("/parking")
	{
		parking.GET("", container.ParkingHandler.ListSlots)
		parking.GET("/floor/:floor", container.ParkingHandler.ListSlotsByFloor)
		parking.GET("/:id", container.ParkingHandler.GetSlot)

		parking.POST("", requireAuth, requireAdmin, container.ParkingHandler.CreateSlot)
		parking.PUT("/:id", requireAuth, requireAdmin, container.ParkingHandler.UpdateSlot)
		parking.DELETE("/:id", requireAuth, requireAdmin, container.ParkingHandler.DeleteSlot)
	}
}
