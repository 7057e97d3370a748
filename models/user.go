package models

import "time"

// User is a lightweight profile created on first use of the app. There is
// no authentication; the ID alone identifies the session.
type User struct {
	ID            string    `bson:"id" json:"id"`
	DisplayName   string    `bson:"displayName" json:"displayName"`
	Gender        string    `bson:"gender" json:"gender"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	SearchCount   int       `bson:"searchCount" json:"searchCount"`
	FavoriteCount int       `bson:"favoriteCount" json:"favoriteCount"`
	ReviewCount   int       `bson:"reviewCount" json:"reviewCount"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
