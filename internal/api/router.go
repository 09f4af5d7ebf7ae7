package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fleetpulse/tracking-api/internal/api/handler"
	"github.com/fleetpulse/tracking-api/internal/api/middleware"
	"github.com/fleetpulse/tracking-api/internal/core/ports"
	"github.com/fleetpulse/tracking-api/internal/hub"
	"github.com/fleetpulse/tracking-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Services are injected rather
// than constructed here so tests can wire stubs.
type Deps struct {
	AuthService     ports.AuthService
	OrderService    ports.OrderService
	LocationService ports.LocationService
	Hub             *hub.Hub
	Mongo           *mongo.Database
	Redis           *redis.Client
	JWTSecret       string
	Log             zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("tracking"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	orderHandler := handler.NewOrderHandler(deps.OrderService)
	locationHandler := handler.NewLocationHandler(deps.LocationService)
	wsHandler := handler.NewWSHandler(deps.Hub, deps.Log)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Public routes ---
	api := e.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	// --- Protected routes ---
	orders := api.Group("/orders", authMiddleware)
	orders.GET("/assigned/:agent_id", orderHandler.Assigned)
	orders.GET("/:order_id", orderHandler.Get)
	orders.PUT("/:order_id/start", orderHandler.Start)
	orders.PUT("/:order_id/complete", orderHandler.Complete)

	agents := api.Group("/agents", authMiddleware)
	agents.GET("/:agent_id/location", locationHandler.Latest)

	// --- Realtime channel ---
	// Unauthenticated: tracking pages are shared with customers who hold no
	// agent token. Inbound frames are validated in the hub.
	e.GET("/ws", wsHandler.Serve)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
