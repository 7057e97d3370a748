package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"buscalocal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFoursquareTestProvider(srv *httptest.Server) *FoursquareProvider {
	p := NewFoursquareProvider("fsq-key", 5*time.Second)
	p.BaseURL = srv.URL
	return p
}

func TestFoursquareSearchBuildsRequest(t *testing.T) {
	var query map[string]string
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	loc := limaCenter
	req := &models.SearchRequest{Query: "ceviche", Location: &loc, Radius: 3000}
	res, err := newFoursquareTestProvider(srv).Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "fsq-key", auth)
	assert.Equal(t, "ceviche", query["query"])
	assert.Equal(t, "-12.0464,-77.0428", query["ll"])
	assert.Equal(t, "3000", query["radius"])
	assert.Equal(t, "13000", query["categories"])
	assert.Equal(t, "20", query["limit"])
	assert.Equal(t, StatusZeroResults, res.Status)
}

func TestFoursquareSearchNormalizesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [{
				"fsq_id": "fsq-1",
				"name": "Cevichería La Mar",
				"categories": [{"name": "Cevichería"}],
				"rating": 9.1,
				"stats": {"total_ratings": 88},
				"location": {"formatted_address": "Av. La Mar 770, Miraflores"},
				"geocodes": {"main": {"latitude": -12.0374, "longitude": -77.0428}},
				"hours": {"open_now": true},
				"price": 3,
				"tel": "+51 1 4213365"
			}]
		}`))
	}))
	defer srv.Close()

	loc := limaCenter
	req := &models.SearchRequest{Query: "ceviche", Location: &loc}
	res, err := newFoursquareTestProvider(srv).Search(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	require.Len(t, res.Businesses, 1)

	biz := res.Businesses[0]
	assert.Equal(t, "fsq-1", biz.ID)
	assert.Equal(t, "Cevichería", biz.Category)
	assert.Equal(t, 88, biz.ReviewCount)
	assert.Equal(t, "Av. La Mar 770, Miraflores", biz.Address)
	assert.Equal(t, "+51 1 4213365", biz.Phone)
	assert.Equal(t, models.PriceExpensive, biz.PriceLevel)
	assert.True(t, biz.IsOpen)
	assert.InDelta(t, 1.0, biz.DistanceKm, 0.01)
}

func TestFoursquareSearchDropsRecordsWithoutGeocodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [
				{"fsq_id": "missing", "name": "Sin ubicación"},
				{"fsq_id": "ok", "name": "Con ubicación", "geocodes": {"main": {"latitude": -12.05, "longitude": -77.04}}}
			]
		}`))
	}))
	defer srv.Close()

	loc := limaCenter
	res, err := newFoursquareTestProvider(srv).Search(context.Background(), &models.SearchRequest{Query: "pollo", Location: &loc})
	require.NoError(t, err)
	require.Len(t, res.Businesses, 1)
	assert.Equal(t, "ok", res.Businesses[0].ID)
}

func TestFoursquareSearchStatusCodes(t *testing.T) {
	tests := []struct {
		code int
		want ProviderStatus
	}{
		{http.StatusUnauthorized, StatusDenied},
		{http.StatusForbidden, StatusDenied},
		{http.StatusTooManyRequests, StatusRateLimited},
		{http.StatusBadRequest, StatusInvalidRequest},
	}
	for _, tt := range tests {
		code := tt.code
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		loc := limaCenter
		res, err := newFoursquareTestProvider(srv).Search(context.Background(), &models.SearchRequest{Query: "pollo", Location: &loc})
		srv.Close()
		require.NoError(t, err, "HTTP %d must map to a typed status", code)
		assert.Equal(t, tt.want, res.Status)
	}
}

func TestFoursquarePriceLevelBuckets(t *testing.T) {
	level := func(n int) *int { return &n }
	tests := []struct {
		price *int
		want  string
	}{
		{level(1), models.PriceBudget},
		{level(2), models.PriceMid},
		{level(3), models.PriceExpensive},
		{level(4), models.PriceExpensive},
		{nil, models.PriceBudget},
		{level(0), models.PriceBudget},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapFoursquarePriceLevel(tt.price))
	}
}
