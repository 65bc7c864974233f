package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/taxi-dispatch/internal/api/handlers"
	"github.com/gocomet/taxi-dispatch/internal/api/routes"
	"github.com/gocomet/taxi-dispatch/internal/config"
	"github.com/gocomet/taxi-dispatch/internal/service/dispatch"
	"github.com/gocomet/taxi-dispatch/internal/service/location"
	"github.com/gocomet/taxi-dispatch/internal/service/pricing"
	"github.com/gocomet/taxi-dispatch/internal/service/rating"
	"github.com/gocomet/taxi-dispatch/internal/service/trips"
	"github.com/gocomet/taxi-dispatch/internal/storage"
	"github.com/gocomet/taxi-dispatch/pkg/cache"
	"github.com/gocomet/taxi-dispatch/pkg/database"
	"github.com/gocomet/taxi-dispatch/pkg/logger"
	"github.com/gocomet/taxi-dispatch/pkg/monitoring"
	"github.com/gocomet/taxi-dispatch/pkg/payment"
	"github.com/gocomet/taxi-dispatch/pkg/websocket"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting taxi dispatch service",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp = nil
	} else if nrApp.IsEnabled() {
		appLogger.Info("New Relic APM initialized",
			logger.String("app_name", cfg.NewRelic.AppName))
		defer nrApp.Shutdown(10 * time.Second)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cache.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			MaxRetries:  cfg.Redis.MaxRetries,
			PoolSize:    cfg.Redis.PoolSize,
			DialTimeout: cfg.Redis.DialTimeout,
			ReadTimeout: cfg.Redis.ReadTimeout,
		})
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		defer cache.Close(redisClient)
	}

	var archive trips.Archiver
	var db *sql.DB
	if cfg.Database.Enabled {
		db, err = database.NewPostgresDB(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
			MaxConns: cfg.Database.MaxConns,
			MaxIdle:  cfg.Database.MaxIdle,
		})
		if err != nil {
			appLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
		}
		defer db.Close()

		tripArchive := storage.NewTripArchive(db)
		if err := tripArchive.EnsureSchema(context.Background()); err != nil {
			appLogger.Fatal("Failed to prepare trip archive", logger.Err(err))
		}
		archive = tripArchive
	}

	hub := websocket.NewHub(appLogger)
	go hub.Run()

	engine := pricing.NewEngine(pricingConfig(cfg))
	tracker := rating.NewTracker()
	dispatcher := dispatch.New(engine, tracker, appLogger, dispatch.Config{
		Seed: cfg.Fleet.Seed,
	})
	dispatcher.SeedFleet(cfg.Fleet.Size, cfg.Fleet.Zones, cfg.Fleet.Seed)
	appLogger.Info("Fleet seeded",
		logger.Int("size", cfg.Fleet.Size),
		logger.Any("zones", cfg.Fleet.Zones),
	)

	manager := trips.NewManager(dispatcher, archive, appLogger)
	validator := location.NewValidator(cfg.Fleet.Zones)
	payments := payment.NewStubGateway()

	h := handlers.NewHandlers(
		manager,
		dispatcher,
		validator,
		payments,
		hub,
		redisClient,
		cfg.Redis.IdempotencyTTL,
		nrApp,
		appLogger,
	)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	routes.SetupRoutes(router, h, newRelicApplication(nrApp))

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.Info("HTTP server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", logger.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", logger.Err(err))
	}
}

func newRelicApplication(app *monitoring.App) *newrelic.Application {
	if app == nil || !app.IsEnabled() {
		return nil
	}
	return app.Application
}

func pricingConfig(cfg *config.Config) pricing.Config {
	pc := pricing.DefaultConfig()
	pc.BaseFare = cfg.Pricing.BaseFare
	pc.PerMileRate = cfg.Pricing.PerMileRate
	pc.DefaultMiles = cfg.Pricing.DefaultMiles
	pc.StrictRoutes = cfg.Pricing.StrictRoutes
	pc.PeakStartHour = cfg.Pricing.PeakStartHour
	pc.PeakEndHour = cfg.Pricing.PeakEndHour
	pc.PeakMultiplier = cfg.Pricing.PeakMultiplier
	return pc
}
