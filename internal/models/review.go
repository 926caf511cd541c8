package models

import (
	"time"
)

type Review struct {
	ID        string `bson:"_id" json:"id"`
	UserID    string `bson:"user_id" json:"user_id"`
	HotelID   string `bson:"hotel_id" json:"hotel_id"`
	BookingID string `bson:"booking_id" json:"booking_id"`

	Rating  int    `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment string `bson:"comment" json:"comment" validate:"required"`
	// Per-category ratings, e.g. {"cleanliness": 5, "location": 4}.
	CategoryRatings map[string]int `bson:"category_ratings,omitempty" json:"category_ratings,omitempty"`

	IsVerified bool      `bson:"is_verified" json:"is_verified"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
