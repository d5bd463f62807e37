// File: slotify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"slotify/config"
	"slotify/cron"
	"slotify/database"
	slotRepo "slotify/database/repository/slot"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/routes"
	"slotify/services/scheduling"
	"slotify/services/sessionmap"
	"slotify/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	defer database.CloseDB()
	utils.InitCache()

	// Repositories. Index and seed setup run here, never inside a request.
	slotRepository := slotRepo.NewMongoSlotRepo()
	if err := slotRepository.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure slot indexes: %v", err)
	}
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := slotRepository.SeedInitialSlots(seedCtx); err != nil {
		seedCancel()
		logger.Sugar().Fatalf("main: failed to seed initial slots: %v", err)
	}
	seedCancel()

	// Background reminder worker.
	cron.InitReminderWorker()

	// Services.
	freeSlotCache := scheduling.NewFreeSlotCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.FreeSlotCacheTTLSecs)*time.Second,
	)
	schedulingService := &scheduling.DefaultSchedulingService{
		Repo:      slotRepository,
		Cache:     freeSlotCache,
		Reminders: cron.NewReminderScheduler(),
	}
	sessionMapper := sessionmap.NewMapper()

	schedulingHandler := handlers.NewSchedulingHandler(schedulingService)
	sessionHandler := handlers.NewSessionHandler(sessionMapper)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		ScheduleMeetingHandler:  schedulingHandler.ScheduleMeetingHandler,
		GetFreeSlotsHandler:     schedulingHandler.GetFreeSlotsHandler,
		AddPotentialSlotHandler: schedulingHandler.AddPotentialSlotHandler,

		GetThreadIDHandler:      sessionHandler.GetThreadIDHandler,
		GetSessionInfoHandler:   sessionHandler.GetSessionInfoHandler,
		ClearSessionHandler:     sessionHandler.ClearSessionHandler,
		ClearAllSessionsHandler: sessionHandler.ClearAllSessionsHandler,
		SessionStatsHandler:     sessionHandler.SessionStatsHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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
