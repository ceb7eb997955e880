package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-room-allocation/internal/cache"
	"clinic-room-allocation/internal/config"
	"clinic-room-allocation/internal/database"
	"clinic-room-allocation/internal/handler"
	"clinic-room-allocation/internal/middleware"
	"clinic-room-allocation/internal/repository"
	"clinic-room-allocation/internal/service"
	"clinic-room-allocation/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize logger
	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()
	zl.Info("Configuration loaded", zap.String("db_driver", cfg.Database.Driver))

	// 3. Initialize storage and repositories
	var repo *repository.Repository
	switch cfg.Database.Driver {
	case config.DriverMemory:
		zl.Warn("Using in-memory storage; data is lost on restart")
		repo = repository.NewMemoryRepository()
	default:
		db, err := database.Connect(cfg, zl)
		if err != nil {
			zl.Fatal("Database connection failed", zap.Error(err))
		}
		if err := database.Migrate(db); err != nil {
			zl.Fatal("Database migration failed", zap.Error(err))
		}
		repo = repository.NewRepository(db)
	}

	// 4. Optional plan cache
	var planCache service.PlanCache
	if cfg.Redis.Addr != "" {
		store, err := cache.Connect(cfg.Redis, zl)
		if err != nil {
			zl.Warn("Plan cache disabled", zap.Error(err))
		} else {
			defer store.Close()
			planCache = store
		}
	}

	// 5. Initialize services
	occupancyService := service.NewOccupancyService(repo, zl)
	planningService := service.NewPlanningService(repo, occupancyService, planCache, zl)
	inventoryService := service.NewInventoryService(repo, zl)
	demandService := service.NewDemandService(repo, zl)

	// 6. Start background sync worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Sync.Enabled {
		go service.NewSyncWorker(occupancyService, cfg.Sync.Interval, zl).Start(ctx)
	}

	// 7. Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(zl),
		middleware.CORS(cfg.CORS),
	)

	// 8. Register handlers and routes
	handler.RegisterRoutes(r, &handler.Handlers{
		Allocation: handler.NewAllocationHandler(planningService, occupancyService),
		Room:       handler.NewRoomHandler(inventoryService, occupancyService),
		Demand:     handler.NewDemandHandler(demandService),
	})

	// 9. Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}
	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	// Cancel background worker context
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}
	zl.Info("Server exited")
}
