package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"glowbook/api"
	"glowbook/config"
	"glowbook/cron"
	"glowbook/database"
	snapshotRepo "glowbook/database/repository/snapshot"
	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/routes"
	"glowbook/services/appointment"
	"glowbook/services/favorites"
	"glowbook/services/wallet"
	"glowbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitFavoritesCache()
	utils.InitSnapshotCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Remote system of record.
	remote := api.NewSystemOfRecordClient()

	// Repositories and stores.
	snapshots := snapshotRepo.NewMongoSnapshotRepo()
	favoritesStore := &favorites.RedisStore{Client: utils.GetFavoritesCacheClient()}

	// Services.
	walletService := &wallet.DefaultWalletService{
		Remote:    remote,
		Snapshots: snapshots,
		Logger:    logger,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Remote:      remote,
		Snapshots:   snapshots,
		WalletSvc:   walletService,
		PolicyCache: utils.GetSnapshotCacheClient(),
		Logger:      logger,
	}

	favoritesService := favorites.NewDefaultFavoritesService(remote, favoritesStore, logger)

	// Background reconciliation worker.
	cron.InitSnapshotWorker(appointmentService, walletService, snapshots)

	// Health monitoring, including a probe of the system of record.
	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"favorites": utils.GetFavoritesCacheClient(),
			"snapshot":  utils.GetSnapshotCacheClient(),
		},
		database.MongoClient,
		func(ctx context.Context) error {
			_, err := remote.FetchPolicy(ctx)
			return err
		},
	)

	// Handlers.
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, logger)
	walletHandler := handlers.NewWalletHandler(walletService, logger)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService, logger)
	sessionHandler := handlers.NewSessionHandler(favoritesService, snapshots, logger)

	handlerBundle := &handlers.HandlerBundle{
		ListAppointments:         appointmentHandler.ListAppointments,
		RefreshAppointments:      appointmentHandler.RefreshAppointments,
		CancelAppointment:        appointmentHandler.CancelAppointment,
		RescheduleAppointment:    appointmentHandler.RescheduleAppointment,
		ModifyAppointmentService: appointmentHandler.ModifyAppointmentService,
		GetBookingPolicy:         appointmentHandler.GetBookingPolicy,

		GetWallet:     walletHandler.GetWallet,
		RefreshWallet: walletHandler.RefreshWallet,

		GetFavorites:   favoritesHandler.GetFavorites,
		ToggleFavorite: favoritesHandler.ToggleFavorite,
		ClearFavorites: favoritesHandler.ClearFavorites,

		SignOut: sessionHandler.SignOut,
	}

	routes.RegisterRoutes(router, handlerBundle)

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
