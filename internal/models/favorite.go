package models

import (
	"time"
)

type Favorite struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	HotelID   string    `bson:"hotel_id" json:"hotel_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FavoriteWithHotel is the $lookup projection returned by the favorites
// list endpoint.
type FavoriteWithHotel struct {
	Favorite `bson:",inline"`
	Hotel    *Hotel `bson:"hotel,omitempty" json:"hotel,omitempty"`
}
