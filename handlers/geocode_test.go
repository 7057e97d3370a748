package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeoRouter(h *GeoHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/maps-config", h.MapsConfig)
	router.GET("/api/reverse-geocode", h.ReverseGeocode)
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestMapsConfigWithKey(t *testing.T) {
	router := newGeoRouter(NewGeoHandler("secret-key", time.Second))

	rec, body := getJSON(t, router, "/api/maps-config")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["hasApiKey"])
	assert.NotContains(t, rec.Body.String(), "secret-key")
}

func TestMapsConfigWithoutKey(t *testing.T) {
	router := newGeoRouter(NewGeoHandler("", time.Second))

	rec, body := getJSON(t, router, "/api/maps-config")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["hasApiKey"])
	assert.NotEmpty(t, body["error"])
}

func TestReverseGeocodeMissingCoordinates(t *testing.T) {
	router := newGeoRouter(NewGeoHandler("key", time.Second))

	rec, body := getJSON(t, router, "/api/reverse-geocode?lat=-12.05")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Coordenadas requeridas", body["error"])
}

func TestReverseGeocodeInvalidCoordinates(t *testing.T) {
	router := newGeoRouter(NewGeoHandler("key", time.Second))

	rec, body := getJSON(t, router, "/api/reverse-geocode?lat=abc&lng=-77.04")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Coordenadas inválidas", body["error"])
}

func TestReverseGeocodeUpstreamSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-12.05,-77.04", r.URL.Query().Get("latlng"))
		assert.Equal(t, "es", r.URL.Query().Get("language"))
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Av. Arequipa 123, Lima, Perú",
				"address_components": [{"long_name": "Lima"}],
				"place_id": "pid-1"
			}]
		}`))
	}))
	defer upstream.Close()

	h := NewGeoHandler("key", time.Second)
	h.BaseURL = upstream.URL
	router := newGeoRouter(h)

	rec, body := getJSON(t, router, "/api/reverse-geocode?lat=-12.05&lng=-77.04")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Av. Arequipa 123, Lima, Perú", body["formatted_address"])
	assert.Equal(t, "pid-1", body["place_id"])
	components, ok := body["address_components"].([]any)
	require.True(t, ok)
	assert.Len(t, components, 1)
}

func TestReverseGeocodeDegradesToFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-OK HTTP status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}},
		{"zero results", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(tt.handler)
			defer upstream.Close()

			h := NewGeoHandler("key", time.Second)
			h.BaseURL = upstream.URL
			router := newGeoRouter(h)

			rec, body := getJSON(t, router, "/api/reverse-geocode?lat=-12.05&lng=-77.04")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "Ubicación: -12.05, -77.04", body["formatted_address"])
			components, ok := body["address_components"].([]any)
			require.True(t, ok)
			assert.Empty(t, components)
		})
	}
}

func TestReverseGeocodeWithoutKeyUsesFallback(t *testing.T) {
	router := newGeoRouter(NewGeoHandler("", time.Second))

	rec, body := getJSON(t, router, "/api/reverse-geocode?lat=-12.05&lng=-77.04")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ubicación: -12.05, -77.04", body["formatted_address"])
	assert.Equal(t, "API key no configurada", body["error"])
}
