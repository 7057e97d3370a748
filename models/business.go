package models

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Business is the canonical, provider-agnostic record returned by the
// search pipeline. Instances are transient: they are built per request and
// never stored as-is (favorites keep a denormalized subset, see Favorite).
type Business struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"reviewCount"`
	Distance    string      `json:"distance"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone,omitempty"`
	Hours       string      `json:"hours,omitempty"`
	IsOpen      bool        `json:"isOpen"`
	PriceLevel  string      `json:"priceLevel"`
	Image       string      `json:"image,omitempty"`
	Coordinates Coordinates `json:"coordinates"`

	// DistanceKm is the numeric distance used for ranking. The wire format
	// only carries the formatted Distance string.
	DistanceKm float64 `json:"-"`
}

// Price tiers for Business.PriceLevel.
const (
	PriceBudget    = "budget"
	PriceMid       = "mid"
	PriceExpensive = "expensive"
)

// SearchFilters optionally narrows a search result set.
type SearchFilters struct {
	Rating     float64 `json:"rating,omitempty"`
	PriceLevel string  `json:"priceLevel,omitempty"`
	OpenNow    bool    `json:"openNow,omitempty"`
}

// SearchRequest is the payload accepted by the search endpoint.
type SearchRequest struct {
	Query    string         `json:"query"`
	Location *Coordinates   `json:"location"`
	Radius   int            `json:"radius,omitempty"`
	Type     string         `json:"type,omitempty"`
	Filters  *SearchFilters `json:"filters,omitempty"`
}
