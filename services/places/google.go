package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"buscalocal/models"
)

const (
	googleNearbyURL     = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	googlePhotoURL      = "https://maps.googleapis.com/maps/api/place/photo"
	googlePhotoMaxWidth = 400
)

// googleCategories maps Google place type tags to the canonical category
// vocabulary. The first tag of a record that appears here wins.
var googleCategories = map[string]string{
	"restaurant":    "Restaurante",
	"food":          "Restaurante",
	"meal_takeaway": "Comida para llevar",
	"meal_delivery": "Delivery",
	"cafe":          "Cafetería",
	"bakery":        "Panadería",
	"bar":           "Bar",
	"night_club":    "Restobar",
}

// Raw response shapes, validated at the adapter boundary.
type googleSearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []googlePlace `json:"results"`
}

type googlePlace struct {
	PlaceID          string              `json:"place_id"`
	Name             string              `json:"name"`
	Types            []string            `json:"types"`
	Rating           float64             `json:"rating"`
	UserRatingsTotal int                 `json:"user_ratings_total"`
	Vicinity         string              `json:"vicinity"`
	FormattedAddress string              `json:"formatted_address"`
	FormattedPhone   string              `json:"formatted_phone_number"`
	PriceLevel       *int                `json:"price_level"`
	Geometry         *googleGeometry     `json:"geometry"`
	OpeningHours     *googleOpeningHours `json:"opening_hours"`
	Photos           []googlePhoto       `json:"photos"`
}

type googleGeometry struct {
	Location googleLatLng `json:"location"`
}

type googleLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googleOpeningHours struct {
	OpenNow *bool `json:"open_now"`
}

type googlePhoto struct {
	PhotoReference string `json:"photo_reference"`
}

// GoogleProvider is the primary place-search provider, backed by the
// Google Places Nearby Search API.
type GoogleProvider struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewGoogleProvider builds the primary adapter with the given transport
// timeout.
func NewGoogleProvider(apiKey string, timeout time.Duration) *GoogleProvider {
	return &GoogleProvider{
		APIKey:  apiKey,
		BaseURL: googleNearbyURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) Configured() bool { return p.APIKey != "" }

// Search issues one nearby-search call scoped to restaurants, with the
// free-text query as a keyword filter.
func (p *GoogleProvider) Search(ctx context.Context, req *models.SearchRequest) (*ProviderResult, error) {
	radius := req.Radius
	if radius <= 0 {
		radius = DefaultRadiusMeters
	}

	q := url.Values{}
	q.Set("location", formatLatLng(req.Location.Latitude, req.Location.Longitude))
	q.Set("radius", strconv.Itoa(radius))
	q.Set("type", "restaurant")
	q.Set("keyword", req.Query)
	q.Set("key", p.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build google places request: %w", err)
	}

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("google places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google places returned HTTP %d", resp.StatusCode)
	}

	var body googleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode google places response: %w", err)
	}

	status := mapGoogleStatus(body.Status)
	if status != StatusOK {
		return &ProviderResult{Status: status}, nil
	}

	origin := *req.Location
	businesses := make([]models.Business, 0, len(body.Results))
	for _, place := range body.Results {
		if biz, ok := p.normalize(place, origin); ok {
			businesses = append(businesses, biz)
		}
	}
	return &ProviderResult{Status: StatusOK, Businesses: businesses}, nil
}

// normalize maps one raw record to the canonical shape. Records without
// usable coordinates are dropped; distance is always recomputed from the
// request origin, never taken from the provider.
func (p *GoogleProvider) normalize(place googlePlace, origin models.Coordinates) (models.Business, bool) {
	if place.Geometry == nil {
		return models.Business{}, false
	}
	coords := models.Coordinates{
		Latitude:  place.Geometry.Location.Lat,
		Longitude: place.Geometry.Location.Lng,
	}
	if !finiteCoordinates(coords) {
		return models.Business{}, false
	}

	km := HaversineDistanceKm(origin, coords)
	biz := models.Business{
		ID:          place.PlaceID,
		Name:        place.Name,
		Category:    mapGoogleCategory(place.Types),
		Rating:      place.Rating,
		ReviewCount: place.UserRatingsTotal,
		Distance:    FormatDistance(km),
		DistanceKm:  km,
		Address:     place.Vicinity,
		Phone:       place.FormattedPhone,
		PriceLevel:  mapGooglePriceLevel(place.PriceLevel),
		Coordinates: coords,
	}
	if biz.Address == "" {
		biz.Address = place.FormattedAddress
	}
	if place.OpeningHours != nil && place.OpeningHours.OpenNow != nil {
		biz.IsOpen = *place.OpeningHours.OpenNow
	}
	if biz.IsOpen {
		biz.Hours = "Abierto ahora"
	} else {
		biz.Hours = "Cerrado"
	}
	if len(place.Photos) > 0 && place.Photos[0].PhotoReference != "" {
		biz.Image = googlePhotoURLFor(place.Photos[0].PhotoReference, p.APIKey)
	}
	return biz, true
}

func mapGoogleCategory(types []string) string {
	for _, t := range types {
		if category, ok := googleCategories[t]; ok {
			return category
		}
	}
	return "Restaurante"
}

// mapGooglePriceLevel buckets the 0-4 scale: {0,1} budget, {2} mid,
// {3,4} expensive, missing or out of range budget.
func mapGooglePriceLevel(priceLevel *int) string {
	if priceLevel == nil {
		return models.PriceBudget
	}
	switch *priceLevel {
	case 0, 1:
		return models.PriceBudget
	case 2:
		return models.PriceMid
	case 3, 4:
		return models.PriceExpensive
	default:
		return models.PriceBudget
	}
}

func mapGoogleStatus(status string) ProviderStatus {
	switch status {
	case "OK":
		return StatusOK
	case "ZERO_RESULTS":
		return StatusZeroResults
	case "INVALID_REQUEST":
		return StatusInvalidRequest
	case "OVER_QUERY_LIMIT":
		return StatusRateLimited
	case "REQUEST_DENIED":
		return StatusDenied
	default:
		return StatusUnknown
	}
}

func googlePhotoURLFor(photoReference, apiKey string) string {
	q := url.Values{}
	q.Set("maxwidth", strconv.Itoa(googlePhotoMaxWidth))
	q.Set("photo_reference", photoReference)
	q.Set("key", apiKey)
	return googlePhotoURL + "?" + q.Encode()
}

func formatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
