package di

import (
	"github.com/prohmpiriya/smart-parking/internal/handler"
	"github.com/prohmpiriya/smart-parking/internal/repository"
	"github.com/prohmpiriya/smart-parking/internal/service"
	"github.com/prohmpiriya/smart-parking/pkg/database"
	"github.com/prohmpiriya/smart-parking/pkg/redis"
)

// Container holds all dependencies for the parking API
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	SlotRepo    repository.ParkingSlotRepository
	BookingRepo repository.BookingRepository
	UserRepo    repository.UserRepository

	// Publishers
	EventPublisher service.EventPublisher

	// Services
	BookingService service.BookingService
	ParkingService service.ParkingService
	AuthService    service.AuthService
	UserService    service.UserService

	// Handlers
	HealthHandler  *handler.HealthHandler
	BookingHandler *handler.BookingHandler
	ParkingHandler *handler.ParkingHandler
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *redis.Client
	EventPublisher service.EventPublisher
	AuthConfig     *service.AuthConfig
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:             cfg.DB,
		Redis:          cfg.Redis,
		EventPublisher: cfg.EventPublisher,
	}

	// Repositories. The slot repository is wrapped with the Redis cache
	// when a client is available.
	var slotRepo repository.ParkingSlotRepository = repository.NewPostgresParkingSlotRepository(c.DB.Pool())
	if c.Redis != nil {
		slotRepo = repository.NewCachedParkingSlotRepository(slotRepo, c.Redis)
	}
	c.SlotRepo = slotRepo
	c.BookingRepo = repository.NewPostgresBookingRepository(c.DB.Pool())
	c.UserRepo = repository.NewPostgresUserRepository(c.DB.Pool())

	// Services
	c.BookingService = service.NewBookingService(c.BookingRepo, c.SlotRepo, c.EventPublisher)
	c.ParkingService = service.NewParkingService(c.SlotRepo)
	c.AuthService = service.NewAuthService(c.UserRepo, cfg.AuthConfig)
	c.UserService = service.NewUserService(c.UserRepo)

	// Handlers. A typed nil Redis client must not become a non-nil
	// HealthChecker.
	var cacheCheck handler.HealthChecker
	if c.Redis != nil {
		cacheCheck = c.Redis
	}
	c.HealthHandler = handler.NewHealthHandler(c.DB, cacheCheck)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService)
	c.ParkingHandler = handler.NewParkingHandler(c.ParkingService)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.UserHandler = handler.NewUserHandler(c.UserService)

	return c
}
