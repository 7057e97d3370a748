// Package localstore mirrors the cloud document store into Redis so reads
// keep working when MongoDB is unreachable. Entries are JSON blobs under
// namespaced keys; popular queries live in a sorted set. Last write wins,
// there is no reconciliation with the cloud copy.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"buscalocal/models"

	"github.com/go-redis/redis/v8"
)

const (
	userKeyPrefix     = "buscalocal:user:"
	favoriteKeyPrefix = "buscalocal:favorites:"
	searchListKey     = "buscalocal:searches"
	popularSetKey     = "buscalocal:popular"

	// searchHistoryCap bounds the mirrored search history list.
	searchHistoryCap = 500
)

// Store is the Redis-backed local mirror.
type Store struct {
	client *redis.Client
}

// NewStore wraps a Redis client as a local mirror store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}

// SaveUser mirrors a user profile.
func (s *Store) SaveUser(user *models.User) error {
	ctx, cancel := opContext()
	defer cancel()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := s.client.Set(ctx, userKeyPrefix+user.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to mirror user %s: %w", user.ID, err)
	}
	return nil
}

// GetUser reads a mirrored user profile. Returns redis.Nil when absent.
func (s *Store) GetUser(id string) (*models.User, error) {
	ctx, cancel := opContext()
	defer cancel()

	data, err := s.client.Get(ctx, userKeyPrefix+id).Result()
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user %s: %w", id, err)
	}
	return &user, nil
}

// DeleteUser removes a mirrored user profile.
func (s *Store) DeleteUser(id string) error {
	ctx, cancel := opContext()
	defer cancel()
	return s.client.Del(ctx, userKeyPrefix+id).Err()
}

// SaveSearch mirrors a search record and bumps its query in the popular
// sorted set.
func (s *Store) SaveSearch(search *models.Search) error {
	ctx, cancel := opContext()
	defer cancel()

	data, err := json.Marshal(search)
	if err != nil {
		return fmt.Errorf("failed to marshal search: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, searchListKey, data)
	pipe.LTrim(ctx, searchListKey, 0, searchHistoryCap-1)
	query := strings.ToLower(strings.TrimSpace(search.Query))
	if query != "" {
		pipe.ZIncrBy(ctx, popularSetKey, 1, query)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mirror search: %w", err)
	}
	return nil
}

// PopularQueries returns the highest-scored queries in the mirror.
func (s *Store) PopularQueries(limit int) ([]string, error) {
	ctx, cancel := opContext()
	defer cancel()

	queries, err := s.client.ZRevRange(ctx, popularSetKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read popular queries: %w", err)
	}
	return queries, nil
}

// SaveFavorite mirrors a favorite under the user's favorites hash.
func (s *Store) SaveFavorite(fav *models.Favorite) error {
	ctx, cancel := opContext()
	defer cancel()

	data, err := json.Marshal(fav)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite: %w", err)
	}
	if err := s.client.HSet(ctx, favoriteKeyPrefix+fav.UserID, fav.BusinessID, data).Err(); err != nil {
		return fmt.Errorf("failed to mirror favorite %s: %w", fav.ID, err)
	}
	return nil
}

// DeleteFavorite removes a mirrored favorite.
func (s *Store) DeleteFavorite(userID, businessID string) error {
	ctx, cancel := opContext()
	defer cancel()
	return s.client.HDel(ctx, favoriteKeyPrefix+userID, businessID).Err()
}

// GetFavorites reads all mirrored favorites for a user.
func (s *Store) GetFavorites(userID string) ([]models.Favorite, error) {
	ctx, cancel := opContext()
	defer cancel()

	rows, err := s.client.HGetAll(ctx, favoriteKeyPrefix+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites for user %s: %w", userID, err)
	}
	favorites := make([]models.Favorite, 0, len(rows))
	for _, data := range rows {
		var f models.Favorite
		if err := json.Unmarshal([]byte(data), &f); err != nil {
			return nil, fmt.Errorf("failed to unmarshal favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, nil
}
