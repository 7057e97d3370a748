package models

import "time"

// Search records one executed search for history, suggestions and the
// popular-queries feed.
type Search struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	Query        string    `bson:"query" json:"query"`
	LocationLat  float64   `bson:"locationLat,omitempty" json:"locationLat,omitempty"`
	LocationLng  float64   `bson:"locationLng,omitempty" json:"locationLng,omitempty"`
	LocationName string    `bson:"locationName,omitempty" json:"locationName,omitempty"`
	ResultsCount int       `bson:"resultsCount" json:"resultsCount"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
