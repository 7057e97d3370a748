package places

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"buscalocal/models"

	"go.uber.org/zap"
)

// SearchCacheTTL is how long a cached result set stays valid.
const SearchCacheTTL = 5 * time.Minute

type cacheEntry struct {
	data      []models.Business
	timestamp time.Time
}

// ResultCache is a TTL cache of search results keyed by the serialized
// request parameters. Entries expire lazily on read; there is no
// background sweep and no size bound. The clock is injected so expiry is
// testable.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewResultCache builds a cache with the given TTL. Pass nil for now to
// use the wall clock.
func NewResultCache(ttl time.Duration, now func() time.Time) *ResultCache {
	if now == nil {
		now = time.Now
	}
	return &ResultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached results for a key, dropping the entry when it has
// outlived the TTL.
func (c *ResultCache) Get(key string) ([]models.Business, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.timestamp) >= c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.data, true
}

// Set stores results under a key with the current timestamp.
func (c *ResultCache) Set(key string, data []models.Business) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{data: data, timestamp: c.now()}
	c.mu.Unlock()
}

// Clear drops every cached entry.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

type searchEnvelope struct {
	Success bool              `json:"success"`
	Results []models.Business `json:"results"`
	Error   string            `json:"error"`
	Details string            `json:"details"`
}

// APIStatus is the outcome of a credentials probe.
type APIStatus struct {
	Configured bool   `json:"configured"`
	Details    string `json:"details"`
}

// SearchClient is the caller-side wrapper over the search endpoint used by
// UI surfaces. Results are cached per serialized request; every failure,
// including a failure envelope from the aggregator, flattens to an empty
// result set so callers stay functional.
type SearchClient struct {
	BaseURL string
	Client  *http.Client
	Cache   *ResultCache
	Logger  *zap.Logger
}

// NewSearchClient builds a client against the given server base URL.
func NewSearchClient(baseURL string, cache *ResultCache, logger *zap.Logger) *SearchClient {
	return &SearchClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
		Cache:   cache,
		Logger:  logger,
	}
}

// Search returns businesses for the given parameters, serving from cache
// when a fresh entry exists. Callers cannot distinguish "no results" from
// "error" at this layer.
func (s *SearchClient) Search(ctx context.Context, params *models.SearchRequest) []models.Business {
	key, err := json.Marshal(params)
	if err != nil {
		s.Logger.Warn("failed to serialize search params", zap.Error(err))
		return []models.Business{}
	}
	cacheKey := string(key)

	if data, ok := s.Cache.Get(cacheKey); ok {
		return data
	}

	envelope, err := s.post(ctx, params)
	if err != nil {
		s.Logger.Warn("search request failed", zap.Error(err))
		return []models.Business{}
	}
	if !envelope.Success {
		s.Logger.Warn("search returned failure envelope",
			zap.String("error", envelope.Error))
		return []models.Business{}
	}

	results := envelope.Results
	if results == nil {
		results = []models.Business{}
	}
	s.Cache.Set(cacheKey, results)
	return results
}

// CheckAPIStatus fires a cheap probe search and interprets the response to
// guess whether provider credentials are configured server-side. Best
// effort; false negatives are possible.
func (s *SearchClient) CheckAPIStatus(ctx context.Context) APIStatus {
	probe := &models.SearchRequest{
		Query: "test",
		Location: &models.Coordinates{
			Latitude:  -12.0464,
			Longitude: -77.0428,
		},
		Radius: 1000,
	}

	envelope, err := s.post(ctx, probe)
	if err != nil {
		return APIStatus{Configured: false, Details: "Error verificando APIs"}
	}
	if envelope.Success || (envelope.Error != "" && !strings.Contains(envelope.Error, "No hay APIs configuradas")) {
		return APIStatus{Configured: true, Details: "APIs configuradas correctamente"}
	}
	return APIStatus{Configured: false, Details: "APIs no configuradas"}
}

func (s *SearchClient) post(ctx context.Context, params *models.SearchRequest) (*searchEnvelope, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.BaseURL+"/api/search-businesses", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}
