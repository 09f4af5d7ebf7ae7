// FleetPulse tracking API server.
//
// @title                      FleetPulse Tracking API
// @version                    1.0
// @description                Delivery agent order lifecycle and realtime GPS tracking.
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/fleetpulse/tracking-api/docs"
	"github.com/fleetpulse/tracking-api/internal/api"
	"github.com/fleetpulse/tracking-api/internal/core/service"
	"github.com/fleetpulse/tracking-api/internal/hub"
	"github.com/fleetpulse/tracking-api/internal/infrastructure/config"
	mongodb "github.com/fleetpulse/tracking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fleetpulse/tracking-api/internal/infrastructure/db/redis"
	"github.com/fleetpulse/tracking-api/internal/infrastructure/queue"
	"github.com/fleetpulse/tracking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	agentRepo := mongodb.NewAgentRepository(db)
	orderRepo := mongodb.NewOrderRepository(db, cfg.OrdersPageLimit)
	locationRepo := mongodb.NewLocationRepository(db)
	locationCache := redisdb.NewLocationCache(rdb)

	for name, ensure := range map[string]func(context.Context) error{
		"agents":    agentRepo.EnsureIndexes,
		"orders":    orderRepo.EnsureIndexes,
		"locations": locationRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	if cfg.SeedDemoData {
		if err := mongodb.EnsureDemoData(ctx, agentRepo, orderRepo, logger.Component("seeder")); err != nil {
			log.Fatal().Err(err).Msg("demo data seeding failed")
		}
	}

	// --- Services ---
	authService := service.NewAuthService(agentRepo, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	orderService := service.NewOrderService(orderRepo, logger.Component("orders"))
	locationService := service.NewLocationService(locationRepo, locationCache, logger.Component("locations"))

	// --- Realtime pipeline ---
	dispatcher := queue.NewDispatcher(cfg.Hub.Workers, cfg.Hub.QueueBuffer, locationService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	trackingHub := hub.New(dispatcher, cfg.Hub.SendBuffer, logger.Component("hub"))
	go trackingHub.Run(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		AuthService:     authService,
		OrderService:    orderService,
		LocationService: locationService,
		Hub:             trackingHub,
		Mongo:           db,
		Redis:           rdb,
		JWTSecret:       cfg.JWTSecret,
		Log:             log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("tracking api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
