package places

import (
	"context"

	"buscalocal/models"
)

// ProviderStatus classifies a provider-reported (non-transport) outcome.
type ProviderStatus string

const (
	StatusOK             ProviderStatus = "OK"
	StatusZeroResults    ProviderStatus = "ZERO_RESULTS"
	StatusInvalidRequest ProviderStatus = "INVALID_REQUEST"
	StatusRateLimited    ProviderStatus = "RATE_LIMITED"
	StatusDenied         ProviderStatus = "DENIED"
	StatusUnknown        ProviderStatus = "UNKNOWN"
)

// ProviderResult is the typed outcome of a single provider call. When the
// status is not OK, Businesses is empty.
type ProviderResult struct {
	Status     ProviderStatus
	Businesses []models.Business
}

// Provider issues exactly one outbound call to a place-search service and
// returns normalized businesses. A status the provider itself reports
// (zero results, denied key, ...) comes back as a ProviderResult; only
// transport failures (network, non-2xx, malformed body) are errors.
// Providers are stateless and perform no retries.
type Provider interface {
	Name() string
	Configured() bool
	Search(ctx context.Context, req *models.SearchRequest) (*ProviderResult, error)
}

// DefaultRadiusMeters bounds a search when the request omits a radius.
const DefaultRadiusMeters = 2000
