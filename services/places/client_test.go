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
	"go.uber.org/zap"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newClientAgainst(srv *httptest.Server, clock *fakeClock) *SearchClient {
	cache := NewResultCache(SearchCacheTTL, clock.Now)
	return NewSearchClient(srv.URL, cache, zap.NewNop())
}

func TestResultCacheExpiresLazily(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewResultCache(SearchCacheTTL, clock.Now)

	cache.Set("k", []models.Business{{ID: "b1"}})

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Len(t, got, 1)

	clock.Advance(4 * time.Minute)
	_, ok = cache.Get("k")
	assert.True(t, ok, "entry younger than the TTL must survive")

	clock.Advance(2 * time.Minute)
	_, ok = cache.Get("k")
	assert.False(t, ok, "entry older than the TTL must be dropped")
}

func TestResultCacheClear(t *testing.T) {
	cache := NewResultCache(SearchCacheTTL, nil)
	cache.Set("a", nil)
	cache.Set("b", nil)
	cache.Clear()

	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.False(t, ok)
}

func TestSearchClientServesFromCacheWithinTTL(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"success":true,"results":[{"id":"b1","name":"Pollería El Dorado"}]}`))
	}))
	defer srv.Close()

	clock := &fakeClock{t: time.Now()}
	client := newClientAgainst(srv, clock)
	loc := limaCenter
	params := &models.SearchRequest{Query: "pollo", Location: &loc}

	first := client.Search(context.Background(), params)
	require.Len(t, first, 1)

	clock.Advance(3 * time.Minute)
	second := client.Search(context.Background(), params)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, hits, "second lookup within the TTL must not hit the network")
}

func TestSearchClientRefetchesAfterTTL(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"success":true,"results":[]}`))
	}))
	defer srv.Close()

	clock := &fakeClock{t: time.Now()}
	client := newClientAgainst(srv, clock)
	loc := limaCenter
	params := &models.SearchRequest{Query: "pollo", Location: &loc}

	client.Search(context.Background(), params)
	clock.Advance(6 * time.Minute)
	client.Search(context.Background(), params)

	assert.Equal(t, 2, hits)
}

func TestSearchClientDistinctParamsMissCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"success":true,"results":[]}`))
	}))
	defer srv.Close()

	clock := &fakeClock{t: time.Now()}
	client := newClientAgainst(srv, clock)
	loc := limaCenter

	client.Search(context.Background(), &models.SearchRequest{Query: "pollo", Location: &loc})
	client.Search(context.Background(), &models.SearchRequest{Query: "ceviche", Location: &loc})

	assert.Equal(t, 2, hits)
}

func TestSearchClientFlattensFailures(t *testing.T) {
	// Failure envelope from the server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"No se encontraron lugares"}`))
	}))
	defer srv.Close()

	clock := &fakeClock{t: time.Now()}
	client := newClientAgainst(srv, clock)
	loc := limaCenter
	params := &models.SearchRequest{Query: "pollo", Location: &loc}

	results := client.Search(context.Background(), params)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	// Dead server.
	dead := newClientAgainst(srv, clock)
	srv.Close()
	results = dead.Search(context.Background(), params)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchClientDoesNotCacheFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.Write([]byte(`{"success":false,"error":"Error de conexión"}`))
			return
		}
		w.Write([]byte(`{"success":true,"results":[{"id":"b1"}]}`))
	}))
	defer srv.Close()

	clock := &fakeClock{t: time.Now()}
	client := newClientAgainst(srv, clock)
	loc := limaCenter
	params := &models.SearchRequest{Query: "pollo", Location: &loc}

	assert.Empty(t, client.Search(context.Background(), params))
	assert.Len(t, client.Search(context.Background(), params), 1)
	assert.Equal(t, 2, hits)
}

func TestCheckAPIStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		configured bool
	}{
		{"search succeeds", `{"success":true,"results":[]}`, true},
		{"no results still means configured", `{"success":false,"error":"No se encontraron lugares"}`, true},
		{"unconfigured backend", `{"success":false,"error":"No hay APIs configuradas"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			clock := &fakeClock{t: time.Now()}
			status := newClientAgainst(srv, clock).CheckAPIStatus(context.Background())
			assert.Equal(t, tt.configured, status.Configured)
		})
	}
}

func TestCheckAPIStatusUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	clock := &fakeClock{t: time.Now()}
	client := newClientAgainst(srv, clock)
	srv.Close()

	status := client.CheckAPIStatus(context.Background())
	assert.False(t, status.Configured)
	assert.Equal(t, "Error verificando APIs", status.Details)
}
