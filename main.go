// File: conjunto/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"conjunto/config"
	"conjunto/cron"
	"conjunto/database"
	"conjunto/database/repository"
	"conjunto/handlers"
	"conjunto/middleware"
	"conjunto/models"
	"conjunto/routes"
	"conjunto/services/parking"
	"conjunto/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()

	// repositories. STORAGE_DRIVER selects the backing store; the service
	// only sees the interfaces.
	var (
		sessionRepo repository.SessionRepository
		slotRepo    repository.SlotRepository
		receiptRepo repository.ReceiptRepository
	)
	switch config.AppConfig.StorageDriver {
	case "mongo":
		database.InitDB()
		sessionRepo = repository.NewMongoSessionRepo()
		slotRepo = repository.NewMongoSlotRepo()
		receiptRepo = repository.NewMongoReceiptRepo()
	default:
		memSessions := repository.NewMemorySessionRepo(snapshotPath("sessions"))
		memSlots := repository.NewMemorySlotRepo(snapshotPath("slots"))
		memReceipts := repository.NewMemoryReceiptRepo(snapshotPath("receipts"))
		sessionRepo = memSessions
		slotRepo = memSlots
		receiptRepo = memReceipts

		// The memory driver periodically snapshots itself to disk.
		cron.InitFlushWorker([]cron.Flusher{memSessions, memSlots, memReceipts})
	}
	logger.Sugar().Infof("main: storage driver %q", config.AppConfig.StorageDriver)

	tariff := models.Tariff{
		FreeMinutes:            config.AppConfig.TariffFreeMinutes,
		HourlyRate:             config.AppConfig.TariffHourlyRate,
		HourlyTierCeilingHours: config.AppConfig.TariffHourlyCeiling,
		DailyRate:              config.AppConfig.TariffDailyRate,
		DayLengthHours:         config.AppConfig.TariffDayLengthHours,
	}

	// services.
	parkingService := parking.NewDefaultParkingService(
		sessionRepo,
		slotRepo,
		receiptRepo,
		utils.GetCacheClient(),
		logger,
		tariff,
		time.Duration(config.AppConfig.PlateLockWaitSeconds)*time.Second,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Vehicle: handlers.NewVehicleHandler(parkingService, logger),
		Receipt: handlers.NewReceiptHandler(parkingService),
		Slot:    handlers.NewSlotHandler(parkingService),
		Admin:   handlers.NewAdminHandler(parkingService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// snapshotPath derives a per-entity snapshot file from the configured
// DATA_FILE, e.g. data.json -> data-sessions.json.
func snapshotPath(entity string) string {
	file := config.AppConfig.DataFile
	if file == "" {
		return ""
	}
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + "-" + entity + ext
}
