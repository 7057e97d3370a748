package handlers

import (
	"net/http"

	"buscalocal/models"
	"buscalocal/services/persistence"
	"buscalocal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FavoriteHandler serves the saved-business endpoints.
type FavoriteHandler struct {
	Gateway *persistence.Gateway
}

// NewFavoriteHandler creates a FavoriteHandler.
func NewFavoriteHandler(gateway *persistence.Gateway) *FavoriteHandler {
	return &FavoriteHandler{Gateway: gateway}
}

// AddFavoriteHandler handles POST /api/favorites.
func (h *FavoriteHandler) AddFavoriteHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var fav models.Favorite
	if err := c.ShouldBindJSON(&fav); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fav.UserID == "" || fav.BusinessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId y businessId son requeridos"})
		return
	}

	if err := h.Gateway.AddFavorite(&fav); err != nil {
		logger.Error("Failed to save favorite",
			zap.String("userId", fav.UserID), zap.String("businessId", fav.BusinessID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el favorito"})
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// RemoveFavoriteHandler handles DELETE /api/favorites/:userId/:businessId.
func (h *FavoriteHandler) RemoveFavoriteHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := c.Param("userId")
	businessID := c.Param("businessId")

	if err := h.Gateway.RemoveFavorite(userID, businessID); err != nil {
		logger.Error("Failed to remove favorite",
			zap.String("userId", userID), zap.String("businessId", businessID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el favorito"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorito eliminado"})
}

// GetFavoritesHandler handles GET /api/favorites/user/:userId.
func (h *FavoriteHandler) GetFavoritesHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := c.Param("userId")

	favorites, err := h.Gateway.GetFavorites(userID)
	if err != nil {
		logger.Error("Failed to read favorites", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los favoritos"})
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
