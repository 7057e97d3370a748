package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Search endpoints.
	SearchBusinesses gin.HandlerFunc
	MapsConfig       gin.HandlerFunc
	ReverseGeocode   gin.HandlerFunc

	// User endpoints.
	RegisterUserHandler gin.HandlerFunc
	GetUserByIDHandler  gin.HandlerFunc
	DeleteUserHandler   gin.HandlerFunc

	// Search history endpoints.
	AddSearchHandler         gin.HandlerFunc
	PopularSearchesHandler   gin.HandlerFunc
	SearchSuggestionsHandler gin.HandlerFunc

	// Favorite endpoints.
	AddFavoriteHandler    gin.HandlerFunc
	RemoveFavoriteHandler gin.HandlerFunc
	GetFavoritesHandler   gin.HandlerFunc
}
