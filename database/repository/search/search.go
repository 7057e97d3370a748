package searchRepo

import (
	"time"

	"buscalocal/models"
)

// SearchRepository defines persistence operations for search history.
type SearchRepository interface {
	Create(search *models.Search) error
	// PopularQueries returns the most frequent queries recorded since the
	// given time, most frequent first.
	PopularQueries(since time.Time, limit int) ([]string, error)
	// RecentByUser returns the user's latest distinct queries recorded
	// since the given time, newest first.
	RecentByUser(userID string, since time.Time, limit int) ([]string, error)
}
