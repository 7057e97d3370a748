package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"buscalocal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GeoHandler serves the map-configuration probe and reverse geocoding.
type GeoHandler struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewGeoHandler creates a GeoHandler with the given transport timeout.
func NewGeoHandler(apiKey string, timeout time.Duration) *GeoHandler {
	return &GeoHandler{
		APIKey:  apiKey,
		BaseURL: googleGeocodeURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// MapsConfig handles GET /api/maps-config. It reports whether a maps key
// is configured without ever leaking the key itself.
func (h *GeoHandler) MapsConfig(c *gin.Context) {
	if h.APIKey == "" {
		c.JSON(http.StatusOK, gin.H{
			"hasApiKey": false,
			"error":     "Google Maps API key not configured",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasApiKey": true})
}

// geocodeResponse is the subset of the Google Geocoding reply we forward.
type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress  string            `json:"formatted_address"`
	AddressComponents []json.RawMessage `json:"address_components"`
	PlaceID           string            `json:"place_id"`
}

// ReverseGeocode handles GET /api/reverse-geocode?lat=..&lng=..
// Missing or invalid coordinates are a 400; any upstream failure degrades
// to a synthesized address with HTTP 200 so the UI stays functional.
func (h *GeoHandler) ReverseGeocode(c *gin.Context) {
	logger := utils.GetLogger()

	lat := c.Query("lat")
	lng := c.Query("lng")
	if lat == "" || lng == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordenadas requeridas"})
		return
	}

	latF, errLat := strconv.ParseFloat(lat, 64)
	lngF, errLng := strconv.ParseFloat(lng, 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordenadas inválidas"})
		return
	}

	fallback := gin.H{
		"formatted_address":  fmt.Sprintf("Ubicación: %s, %s", lat, lng),
		"address_components": []any{},
		"coordinates":        gin.H{"lat": latF, "lng": lngF},
	}

	if h.APIKey == "" {
		fallback["error"] = "API key no configurada"
		c.JSON(http.StatusOK, fallback)
		return
	}

	url := fmt.Sprintf("%s?latlng=%s,%s&key=%s&language=es", h.BaseURL, lat, lng, h.APIKey)
	resp, err := h.Client.Get(url)
	if err != nil {
		logger.Warn("reverse geocoding request failed", zap.Error(err))
		c.JSON(http.StatusOK, fallback)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("reverse geocoding returned non-OK status",
			zap.Int("status", resp.StatusCode))
		c.JSON(http.StatusOK, fallback)
		return
	}

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		logger.Warn("failed to decode reverse geocoding response", zap.Error(err))
		c.JSON(http.StatusOK, fallback)
		return
	}

	if data.Status != "OK" || len(data.Results) == 0 {
		c.JSON(http.StatusOK, fallback)
		return
	}

	result := data.Results[0]
	components := result.AddressComponents
	if components == nil {
		components = []json.RawMessage{}
	}
	c.JSON(http.StatusOK, gin.H{
		"formatted_address":  result.FormattedAddress,
		"address_components": components,
		"place_id":           result.PlaceID,
		"coordinates":        gin.H{"lat": latF, "lng": lngF},
	})
}
