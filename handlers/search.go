package handlers

import (
	"net/http"

	"buscalocal/models"
	"buscalocal/services/places"
	"buscalocal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler serves the business search endpoint backed by the
// aggregation layer.
type SearchHandler struct {
	Aggregator *places.Aggregator
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(aggregator *places.Aggregator) *SearchHandler {
	return &SearchHandler{Aggregator: aggregator}
}

// SearchBusinesses handles POST /api/search-businesses.
func (h *SearchHandler) SearchBusinesses(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Error en la búsqueda",
			"details": "El cuerpo de la solicitud no es válido",
		})
		return
	}

	results, err := h.Aggregator.Search(c.Request.Context(), &req)
	if err != nil {
		message, details := places.UserMessage(err)
		logger.Warn("business search failed",
			zap.String("query", req.Query), zap.Error(err))
		c.JSON(places.HTTPStatus(err), gin.H{
			"success": false,
			"error":   message,
			"details": details,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}
