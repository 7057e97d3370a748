package routes

import (
	"net/http"
	"time"

	"buscalocal/handlers"
	"buscalocal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSearchRoutes registers the search, maps-config and geocoding endpoints.
func RegisterSearchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/search-businesses", hb.SearchBusinesses)
		api.GET("/maps-config", hb.MapsConfig)
		api.GET("/reverse-geocode", hb.ReverseGeocode)
	}
}

// RegisterUserRoutes registers user profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.GET("/:id", hb.GetUserByIDHandler)
		api.DELETE("/:id", hb.DeleteUserHandler)
	}
}

// RegisterSearchHistoryRoutes registers search history endpoints.
func RegisterSearchHistoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/searches")
	{
		api.POST("", hb.AddSearchHandler)
		api.GET("/popular", hb.PopularSearchesHandler)
		api.GET("/suggestions", hb.SearchSuggestionsHandler)
	}
}

// RegisterFavoriteRoutes registers favorite endpoints.
func RegisterFavoriteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/favorites")
	{
		api.POST("", hb.AddFavoriteHandler)
		api.DELETE("/:userId/:businessId", hb.RemoveFavoriteHandler)
		api.GET("/user/:userId", hb.GetFavoritesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm BuscaLocal",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSearchRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterSearchHistoryRoutes(r, hb)
	RegisterFavoriteRoutes(r, hb)
	RegisterHealthRoute(r)
}
