// Package persistence dual-writes user, search, and favorite records to
// the cloud document store with a mirrored copy in the local fallback
// store. Cloud unavailability is a soft failure: a write still succeeds as
// long as the local mirror takes it, and reads prefer the cloud copy but
// fall back to the mirror.
package persistence

import (
	"fmt"
	"time"

	favoriteRepo "buscalocal/database/repository/favorite"
	searchRepo "buscalocal/database/repository/search"
	userRepo "buscalocal/database/repository/user"
	"buscalocal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	trendingWindow    = 7 * 24 * time.Hour
	recentWindow      = 30 * 24 * time.Hour
	maxSuggestions    = 8
	recentSuggestions = 5
)

// LocalStore is the mirror side of the dual write.
type LocalStore interface {
	SaveUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	DeleteUser(id string) error
	SaveSearch(search *models.Search) error
	PopularQueries(limit int) ([]string, error)
	SaveFavorite(fav *models.Favorite) error
	DeleteFavorite(userID, businessID string) error
	GetFavorites(userID string) ([]models.Favorite, error)
}

// Gateway implements the dual-write persistence contract.
type Gateway struct {
	Users     userRepo.UserRepository
	Searches  searchRepo.SearchRepository
	Favorites favoriteRepo.FavoriteRepository
	Local     LocalStore
	Logger    *zap.Logger
}

// NewGateway wires the cloud repositories and the local mirror.
func NewGateway(users userRepo.UserRepository, searches searchRepo.SearchRepository,
	favorites favoriteRepo.FavoriteRepository, local LocalStore, logger *zap.Logger,
) *Gateway {
	return &Gateway{
		Users:     users,
		Searches:  searches,
		Favorites: favorites,
		Local:     local,
		Logger:    logger,
	}
}

// CreateUser registers a lightweight profile with a server-generated ID.
func (g *Gateway) CreateUser(displayName, gender, phone string) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		ID:          "user_" + uuid.NewString(),
		DisplayName: displayName,
		Gender:      gender,
		Phone:       phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := g.Users.Create(user); err != nil {
		g.Logger.Warn("cloud store unavailable, keeping user local only",
			zap.String("userId", user.ID), zap.Error(err))
	}
	if err := g.Local.SaveUser(user); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}
	return user, nil
}

// GetUser reads a profile, preferring the cloud copy.
func (g *Gateway) GetUser(id string) (*models.User, error) {
	user, err := g.Users.GetByID(id)
	if err == nil {
		return user, nil
	}
	g.Logger.Warn("cloud store read failed, falling back to local mirror",
		zap.String("userId", id), zap.Error(err))
	return g.Local.GetUser(id)
}

// DeleteUser removes a profile from both stores.
func (g *Gateway) DeleteUser(id string) error {
	if err := g.Users.Delete(id); err != nil {
		g.Logger.Warn("cloud store delete failed",
			zap.String("userId", id), zap.Error(err))
	}
	return g.Local.DeleteUser(id)
}

// AddSearch records an executed search and bumps the user's search count.
func (g *Gateway) AddSearch(search *models.Search) (*models.Search, error) {
	search.ID = uuid.NewString()
	search.CreatedAt = time.Now()

	if err := g.Searches.Create(search); err != nil {
		g.Logger.Warn("cloud store unavailable, keeping search local only",
			zap.String("query", search.Query), zap.Error(err))
	}
	if err := g.Local.SaveSearch(search); err != nil {
		return nil, fmt.Errorf("failed to persist search: %w", err)
	}

	if search.UserID != "" {
		if err := g.Users.IncrementStat(search.UserID, "searchCount", 1); err != nil {
			g.Logger.Warn("failed to bump search count",
				zap.String("userId", search.UserID), zap.Error(err))
		}
	}
	return search, nil
}

// GetPopularSearches returns the most frequent queries over the trending
// window, falling back to the local mirror's counters.
func (g *Gateway) GetPopularSearches(limit int) ([]string, error) {
	queries, err := g.Searches.PopularQueries(time.Now().Add(-trendingWindow), limit)
	if err == nil {
		return queries, nil
	}
	g.Logger.Warn("cloud store aggregation failed, using local counters", zap.Error(err))
	return g.Local.PopularQueries(limit)
}

// GetSearchSuggestions merges the user's recent queries with trending
// ones, deduplicated, capped at eight.
func (g *Gateway) GetSearchSuggestions(userID string) ([]string, error) {
	suggestions := make([]string, 0, maxSuggestions)
	seen := make(map[string]bool)

	add := func(queries []string) {
		for _, q := range queries {
			if q == "" || seen[q] || len(suggestions) >= maxSuggestions {
				continue
			}
			seen[q] = true
			suggestions = append(suggestions, q)
		}
	}

	if userID != "" {
		recent, err := g.Searches.RecentByUser(userID, time.Now().Add(-recentWindow), recentSuggestions)
		if err != nil {
			g.Logger.Warn("failed to read recent searches",
				zap.String("userId", userID), zap.Error(err))
		} else {
			add(recent)
		}
	}

	trending, err := g.GetPopularSearches(recentSuggestions)
	if err != nil {
		if len(suggestions) == 0 {
			return nil, err
		}
		g.Logger.Warn("failed to read trending searches", zap.Error(err))
	} else {
		add(trending)
	}
	return suggestions, nil
}

// AddFavorite saves a denormalized business subset under the composite ID
// and bumps the user's favorite count.
func (g *Gateway) AddFavorite(fav *models.Favorite) error {
	fav.ID = fav.UserID + "_" + fav.BusinessID
	fav.CreatedAt = time.Now()

	if err := g.Favorites.Upsert(fav); err != nil {
		g.Logger.Warn("cloud store unavailable, keeping favorite local only",
			zap.String("favoriteId", fav.ID), zap.Error(err))
	}
	if err := g.Local.SaveFavorite(fav); err != nil {
		return fmt.Errorf("failed to persist favorite: %w", err)
	}

	if err := g.Users.IncrementStat(fav.UserID, "favoriteCount", 1); err != nil {
		g.Logger.Warn("failed to bump favorite count",
			zap.String("userId", fav.UserID), zap.Error(err))
	}
	return nil
}

// RemoveFavorite deletes a favorite from both stores and decrements the
// user's favorite count.
func (g *Gateway) RemoveFavorite(userID, businessID string) error {
	if err := g.Favorites.Delete(userID, businessID); err != nil {
		g.Logger.Warn("cloud store delete failed",
			zap.String("userId", userID), zap.String("businessId", businessID), zap.Error(err))
	}
	if err := g.Local.DeleteFavorite(userID, businessID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	if err := g.Users.IncrementStat(userID, "favoriteCount", -1); err != nil {
		g.Logger.Warn("failed to bump favorite count",
			zap.String("userId", userID), zap.Error(err))
	}
	return nil
}

// GetFavorites lists a user's saved businesses, preferring the cloud copy.
func (g *Gateway) GetFavorites(userID string) ([]models.Favorite, error) {
	favorites, err := g.Favorites.GetByUser(userID)
	if err == nil {
		return favorites, nil
	}
	g.Logger.Warn("cloud store read failed, falling back to local mirror",
		zap.String("userId", userID), zap.Error(err))
	return g.Local.GetFavorites(userID)
}
