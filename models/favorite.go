package models

import "time"

// Favorite is the denormalized subset of a Business a user saved. The
// document ID is "{userId}_{businessId}" so saving twice overwrites.
type Favorite struct {
	ID               string    `bson:"id" json:"id"`
	UserID           string    `bson:"userId" json:"userId"`
	BusinessID       string    `bson:"businessId" json:"businessId"`
	BusinessName     string    `bson:"businessName" json:"businessName"`
	BusinessAddress  string    `bson:"businessAddress,omitempty" json:"businessAddress,omitempty"`
	BusinessRating   float64   `bson:"businessRating,omitempty" json:"businessRating,omitempty"`
	BusinessImageURL string    `bson:"businessImageUrl,omitempty" json:"businessImageUrl,omitempty"`
	BusinessCategory string    `bson:"businessCategory,omitempty" json:"businessCategory,omitempty"`
	BusinessPhone    string    `bson:"businessPhone,omitempty" json:"businessPhone,omitempty"`
	BusinessLat      float64   `bson:"businessLat,omitempty" json:"businessLat,omitempty"`
	BusinessLng      float64   `bson:"businessLng,omitempty" json:"businessLng,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}
