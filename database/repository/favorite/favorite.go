package favoriteRepo

import "buscalocal/models"

// FavoriteRepository defines persistence operations for saved businesses.
type FavoriteRepository interface {
	// Upsert saves a favorite, overwriting an earlier save of the same
	// business by the same user.
	Upsert(fav *models.Favorite) error
	Delete(userID, businessID string) error
	GetByUser(userID string) ([]models.Favorite, error)
}
