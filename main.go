// File: voyago/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyago/config"
	"voyago/cron"
	"voyago/database"
	itineraryRepo "voyago/database/repository/itinerary"
	packingRepo "voyago/database/repository/packing"
	"voyago/handlers"
	"voyago/middleware"
	"voyago/routes"
	"voyago/services/recommend"
	"voyago/services/tasks"
	"voyago/services/trip"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// sessionTTL bounds how long an abandoned wizard session lingers in Redis.
const sessionTTL = 24 * time.Hour

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	packingRepository := packingRepo.NewMongoPackingRepo()
	itineraryRepository := itineraryRepo.NewMongoItineraryRepo()

	// Session state lives in Redis so any instance can serve any request.
	tripStore := trip.NewRedisStore(utils.GetSessionCacheClient(), sessionTTL)

	// Packing reminders fire off trip mutations instead of a polling loop.
	reminderScheduler := tasks.NewReminderScheduler()
	tripStore.Subscribe(reminderScheduler.OnTripMutation)

	// services.
	tripService := &trip.DefaultTripService{
		Store: tripStore,
	}

	gateway := recommend.NewHTTPGateway()
	recommendService := recommend.NewDefaultRecommendationService(tripStore, gateway, packingRepository)

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Trip:           handlers.NewTripHandler(tripService),
		Recommendation: handlers.NewRecommendationHandler(recommendService),
		Chat:           handlers.NewChatHandler(gateway),
		Packing:        handlers.NewPackingHandler(packingRepository),
		Itinerary:      handlers.NewItineraryHandler(itineraryRepository),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

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
