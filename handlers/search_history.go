package handlers

import (
	"net/http"
	"strconv"

	"buscalocal/models"
	"buscalocal/services/persistence"
	"buscalocal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultPopularLimit = 10

// SearchHistoryHandler serves search-history recording and suggestion
// endpoints.
type SearchHistoryHandler struct {
	Gateway *persistence.Gateway
}

// NewSearchHistoryHandler creates a SearchHistoryHandler.
func NewSearchHistoryHandler(gateway *persistence.Gateway) *SearchHistoryHandler {
	return &SearchHistoryHandler{Gateway: gateway}
}

// AddSearchHandler handles POST /api/searches.
func (h *SearchHistoryHandler) AddSearchHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		UserID       string  `json:"userId"`
		Query        string  `json:"query" binding:"required"`
		LocationLat  float64 `json:"locationLat"`
		LocationLng  float64 `json:"locationLng"`
		LocationName string  `json:"locationName"`
		ResultsCount int     `json:"resultsCount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	search := &models.Search{
		UserID:       req.UserID,
		Query:        req.Query,
		LocationLat:  req.LocationLat,
		LocationLng:  req.LocationLng,
		LocationName: req.LocationName,
		ResultsCount: req.ResultsCount,
	}
	saved, err := h.Gateway.AddSearch(search)
	if err != nil {
		logger.Error("Failed to record search", zap.String("query", req.Query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar la búsqueda"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// PopularSearchesHandler handles GET /api/searches/popular?limit=n.
func (h *SearchHistoryHandler) PopularSearchesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	limit := defaultPopularLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro limit inválido"})
			return
		}
		limit = parsed
	}

	queries, err := h.Gateway.GetPopularSearches(limit)
	if err != nil {
		logger.Error("Failed to read popular searches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener las búsquedas populares"})
		return
	}
	if queries == nil {
		queries = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"searches": queries})
}

// SearchSuggestionsHandler handles GET /api/searches/suggestions?userId=.
func (h *SearchHistoryHandler) SearchSuggestionsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	suggestions, err := h.Gateway.GetSearchSuggestions(c.Query("userId"))
	if err != nil {
		logger.Error("Failed to build search suggestions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener sugerencias"})
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
