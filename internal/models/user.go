package models

import (
	"time"
)

type User struct {
	ID        string `bson:"_id" json:"id"`
	Email     string `bson:"email" json:"email" validate:"required,email"`
	Password  string `bson:"password" json:"-"`
	FirstName string `bson:"first_name" json:"first_name" validate:"required"`
	LastName  string `bson:"last_name" json:"last_name" validate:"required"`
	Role      string `bson:"role" json:"role" validate:"required,oneof=user admin hotel_owner"`
	// Denormalized aggregates, maintained by the booking flow.
	TotalBookings int       `bson:"total_bookings" json:"total_bookings"`
	TotalSpent    int64     `bson:"total_spent" json:"total_spent"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
