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
	foursquareSearchURL = "https://api.foursquare.com/v3/places/search"

	// foursquareCategoryFood is the v3 category code covering food and
	// dining venues.
	foursquareCategoryFood = "13000"
	foursquareResultLimit  = 20
)

// Raw response shapes for the Foursquare Places v3 search.
type fsqSearchResponse struct {
	Results []fsqPlace `json:"results"`
}

type fsqPlace struct {
	FsqID      string        `json:"fsq_id"`
	Name       string        `json:"name"`
	Categories []fsqCategory `json:"categories"`
	Rating     float64       `json:"rating"`
	Stats      *fsqStats     `json:"stats"`
	Location   *fsqLocation  `json:"location"`
	Geocodes   *fsqGeocodes  `json:"geocodes"`
	Hours      *fsqHours     `json:"hours"`
	Price      *int          `json:"price"`
	Tel        string        `json:"tel"`
}

type fsqCategory struct {
	Name string `json:"name"`
}

type fsqStats struct {
	TotalRatings int `json:"total_ratings"`
}

type fsqLocation struct {
	FormattedAddress string `json:"formatted_address"`
	Address          string `json:"address"`
}

type fsqGeocodes struct {
	Main *fsqLatLng `json:"main"`
}

type fsqLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type fsqHours struct {
	OpenNow bool `json:"open_now"`
}

// FoursquareProvider is the secondary place-search provider, invoked only
// when the primary yields no usable results.
type FoursquareProvider struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewFoursquareProvider builds the fallback adapter with the given
// transport timeout.
func NewFoursquareProvider(apiKey string, timeout time.Duration) *FoursquareProvider {
	return &FoursquareProvider{
		APIKey:  apiKey,
		BaseURL: foursquareSearchURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (p *FoursquareProvider) Name() string { return "foursquare" }

func (p *FoursquareProvider) Configured() bool { return p.APIKey != "" }

// Search issues one place search scoped to the food category.
func (p *FoursquareProvider) Search(ctx context.Context, req *models.SearchRequest) (*ProviderResult, error) {
	radius := req.Radius
	if radius <= 0 {
		radius = DefaultRadiusMeters
	}

	q := url.Values{}
	q.Set("query", req.Query)
	q.Set("ll", formatLatLng(req.Location.Latitude, req.Location.Longitude))
	q.Set("radius", strconv.Itoa(radius))
	q.Set("categories", foursquareCategoryFood)
	q.Set("limit", strconv.Itoa(foursquareResultLimit))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build foursquare request: %w", err)
	}
	httpReq.Header.Set("Authorization", p.APIKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("foursquare request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &ProviderResult{Status: StatusDenied}, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &ProviderResult{Status: StatusRateLimited}, nil
	case resp.StatusCode == http.StatusBadRequest:
		return &ProviderResult{Status: StatusInvalidRequest}, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("foursquare returned HTTP %d", resp.StatusCode)
	}

	var body fsqSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode foursquare response: %w", err)
	}

	if len(body.Results) == 0 {
		return &ProviderResult{Status: StatusZeroResults}, nil
	}

	origin := *req.Location
	businesses := make([]models.Business, 0, len(body.Results))
	for _, place := range body.Results {
		if biz, ok := normalizeFoursquarePlace(place, origin); ok {
			businesses = append(businesses, biz)
		}
	}
	return &ProviderResult{Status: StatusOK, Businesses: businesses}, nil
}

// normalizeFoursquarePlace maps one raw record to the canonical shape.
// Records without geocodes are dropped rather than given placeholder
// coordinates; distance is recomputed from the request origin.
func normalizeFoursquarePlace(place fsqPlace, origin models.Coordinates) (models.Business, bool) {
	if place.Geocodes == nil || place.Geocodes.Main == nil {
		return models.Business{}, false
	}
	coords := models.Coordinates{
		Latitude:  place.Geocodes.Main.Latitude,
		Longitude: place.Geocodes.Main.Longitude,
	}
	if !finiteCoordinates(coords) {
		return models.Business{}, false
	}

	km := HaversineDistanceKm(origin, coords)
	biz := models.Business{
		ID:          place.FsqID,
		Name:        place.Name,
		Category:    mapFoursquareCategory(place.Categories),
		Rating:      place.Rating,
		Distance:    FormatDistance(km),
		DistanceKm:  km,
		Phone:       place.Tel,
		PriceLevel:  mapFoursquarePriceLevel(place.Price),
		Coordinates: coords,
	}
	if place.Stats != nil {
		biz.ReviewCount = place.Stats.TotalRatings
	}
	if place.Location != nil {
		biz.Address = place.Location.FormattedAddress
		if biz.Address == "" {
			biz.Address = place.Location.Address
		}
	}
	if place.Hours != nil {
		biz.IsOpen = place.Hours.OpenNow
	}
	return biz, true
}

func mapFoursquareCategory(categories []fsqCategory) string {
	if len(categories) > 0 && categories[0].Name != "" {
		return categories[0].Name
	}
	return "Restaurante"
}

// mapFoursquarePriceLevel buckets the 1-4 scale: {1} budget, {2} mid,
// {3,4} expensive, missing or out of range budget.
func mapFoursquarePriceLevel(price *int) string {
	if price == nil {
		return models.PriceBudget
	}
	switch *price {
	case 1:
		return models.PriceBudget
	case 2:
		return models.PriceMid
	case 3, 4:
		return models.PriceExpensive
	default:
		return models.PriceBudget
	}
}
