// File: buscalocal/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buscalocal/config"
	"buscalocal/database"
	"buscalocal/database/localstore"
	favoriteRepo "buscalocal/database/repository/favorite"
	searchRepo "buscalocal/database/repository/search"
	userRepoPkg "buscalocal/database/repository/user"
	"buscalocal/handlers"
	"buscalocal/middleware"
	"buscalocal/routes"
	"buscalocal/services/persistence"
	"buscalocal/services/places"
	"buscalocal/utils"

	"github.com/gin-gonic/gin"
)

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
	userRepo := userRepoPkg.NewMongoUserRepo()
	searchesRepo := searchRepo.NewMongoSearchRepo()
	favoritesRepo := favoriteRepo.NewMongoFavoriteRepo()
	localStore := localstore.NewStore(utils.GetCacheClient())

	// services.
	gateway := persistence.NewGateway(userRepo, searchesRepo, favoritesRepo, localStore, logger)

	timeout := config.ProviderTimeout()
	primary := places.NewGoogleProvider(config.AppConfig.GooglePlacesAPIKey, timeout)
	secondary := places.NewFoursquareProvider(config.AppConfig.FoursquareAPIKey, timeout)
	aggregator := places.NewAggregator(primary, secondary, logger)

	// handlers.
	searchHandler := handlers.NewSearchHandler(aggregator)
	geoHandler := handlers.NewGeoHandler(config.AppConfig.GooglePlacesAPIKey, timeout)
	userHandler := handlers.NewUserHandler(gateway)
	historyHandler := handlers.NewSearchHistoryHandler(gateway)
	favoriteHandler := handlers.NewFavoriteHandler(gateway)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Search endpoints.
		SearchBusinesses: searchHandler.SearchBusinesses,
		MapsConfig:       geoHandler.MapsConfig,
		ReverseGeocode:   geoHandler.ReverseGeocode,

		// User endpoints.
		RegisterUserHandler: userHandler.RegisterUserHandler,
		GetUserByIDHandler:  userHandler.GetUserByIDHandler,
		DeleteUserHandler:   userHandler.DeleteUserHandler,

		// Search history endpoints.
		AddSearchHandler:         historyHandler.AddSearchHandler,
		PopularSearchesHandler:   historyHandler.PopularSearchesHandler,
		SearchSuggestionsHandler: historyHandler.SearchSuggestionsHandler,

		// Favorite endpoints.
		AddFavoriteHandler:    favoriteHandler.AddFavoriteHandler,
		RemoveFavoriteHandler: favoriteHandler.RemoveFavoriteHandler,
		GetFavoritesHandler:   favoriteHandler.GetFavoritesHandler,
	}

	// Register routes with the assembled handler bundle.
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
