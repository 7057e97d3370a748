package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"buscalocal/services/places"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSearchRouter(agg *places.Aggregator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/search-businesses", NewSearchHandler(agg).SearchBusinesses)
	return router
}

type searchResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
	Results []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Category    string `json:"category"`
		Distance    string `json:"distance"`
		PriceLevel  string `json:"priceLevel"`
		Coordinates struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"coordinates"`
	} `json:"results"`
}

func doSearch(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, searchResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/search-businesses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

// End to end through the fallback path: Google has no key, Foursquare is
// stubbed, and the response must carry fully normalized records.
func TestSearchBusinessesFallbackEndToEnd(t *testing.T) {
	fsq := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pollo a la brasa", r.URL.Query().Get("query"))
		w.Write([]byte(`{
			"results": [{
				"fsq_id": "fsq-dorado",
				"name": "Pollería El Dorado",
				"categories": [{"name": "Pollería"}],
				"rating": 8.7,
				"stats": {"total_ratings": 412},
				"location": {"formatted_address": "Av. Abancay 100, Lima"},
				"geocodes": {"main": {"latitude": -12.0437, "longitude": -77.0428}},
				"hours": {"open_now": true},
				"price": 1
			}]
		}`))
	}))
	defer fsq.Close()

	primary := places.NewGoogleProvider("", 5*time.Second)
	secondary := places.NewFoursquareProvider("fsq-key", 5*time.Second)
	secondary.BaseURL = fsq.URL
	router := newSearchRouter(places.NewAggregator(primary, secondary, zap.NewNop()))

	rec, resp := doSearch(t, router,
		`{"query":"pollo a la brasa","location":{"latitude":-12.0464,"longitude":-77.0428},"radius":2000}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	require.Len(t, resp.Results, 1)

	biz := resp.Results[0]
	assert.Equal(t, "fsq-dorado", biz.ID)
	assert.Equal(t, "Pollería El Dorado", biz.Name)
	assert.Equal(t, "Pollería", biz.Category)
	assert.Equal(t, "300m", biz.Distance)
	assert.Equal(t, "budget", biz.PriceLevel)
	assert.InDelta(t, -12.0437, biz.Coordinates.Latitude, 1e-9)
}

func TestSearchBusinessesMalformedBody(t *testing.T) {
	primary := places.NewGoogleProvider("key", 5*time.Second)
	router := newSearchRouter(places.NewAggregator(primary, nil, zap.NewNop()))

	rec, resp := doSearch(t, router, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Error en la búsqueda", resp.Error)
}

func TestSearchBusinessesValidation(t *testing.T) {
	primary := places.NewGoogleProvider("key", 5*time.Second)
	router := newSearchRouter(places.NewAggregator(primary, nil, zap.NewNop()))

	rec, resp := doSearch(t, router, `{"query":"","location":{"latitude":-12.0464,"longitude":-77.0428}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestSearchBusinessesNoProvidersConfigured(t *testing.T) {
	primary := places.NewGoogleProvider("", 5*time.Second)
	secondary := places.NewFoursquareProvider("", 5*time.Second)
	router := newSearchRouter(places.NewAggregator(primary, secondary, zap.NewNop()))

	rec, resp := doSearch(t, router,
		`{"query":"pollo","location":{"latitude":-12.0464,"longitude":-77.0428}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "No hay APIs configuradas")
}

func TestSearchBusinessesNoResults(t *testing.T) {
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer google.Close()

	primary := places.NewGoogleProvider("key", 5*time.Second)
	primary.BaseURL = google.URL
	router := newSearchRouter(places.NewAggregator(primary, nil, zap.NewNop()))

	rec, resp := doSearch(t, router,
		`{"query":"xyzzy","location":{"latitude":-12.0464,"longitude":-77.0428}}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "No se encontraron lugares", resp.Error)
}
