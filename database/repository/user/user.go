package userRepo

import "buscalocal/models"

// UserRepository defines persistence operations for user profiles.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	Delete(id string) error
	// IncrementStat bumps one of the user counters (searchCount,
	// favoriteCount, reviewCount) by delta.
	IncrementStat(id, field string, delta int) error
}
