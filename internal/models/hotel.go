package models

import (
	"time"
)

// HotelContact and HotelPolicies are optional structured records. A nil
// pointer means the owner never supplied them; zero-value fields inside a
// non-nil record mean "unset".
type HotelContact struct {
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Website string `bson:"website,omitempty" json:"website,omitempty" validate:"omitempty,url"`
}

type HotelPolicies struct {
	CheckInTime        string `bson:"check_in_time,omitempty" json:"check_in_time,omitempty"`   // HH:MM (24h)
	CheckOutTime       string `bson:"check_out_time,omitempty" json:"check_out_time,omitempty"` // HH:MM (24h)
	CancellationPolicy string `bson:"cancellation_policy,omitempty" json:"cancellation_policy,omitempty"`
	PetsAllowed        bool   `bson:"pets_allowed" json:"pets_allowed"`
}

type Hotel struct {
	ID     string `bson:"_id" json:"id"`
	UserID string `bson:"user_id" json:"user_id"`

	Name        string   `bson:"name" json:"name" validate:"required"`
	City        string   `bson:"city" json:"city" validate:"required"`
	Country     string   `bson:"country" json:"country" validate:"required"`
	Description string   `bson:"description" json:"description" validate:"required"`
	Types       []string `bson:"types" json:"types" validate:"required,min=1"`
	Facilities  []string `bson:"facilities" json:"facilities" validate:"required,min=1"`

	StarRating    int `bson:"star_rating" json:"star_rating" validate:"required,min=1,max=5"`
	PricePerNight int `bson:"price_per_night" json:"price_per_night" validate:"required,gt=0"`
	AdultCount    int `bson:"adult_count" json:"adult_count" validate:"required,gt=0"`
	ChildCount    int `bson:"child_count" json:"child_count" validate:"gte=0"`

	ImageURLs []string       `bson:"image_urls" json:"image_urls"`
	Contact   *HotelContact  `bson:"contact,omitempty" json:"contact,omitempty"`
	Policies  *HotelPolicies `bson:"policies,omitempty" json:"policies,omitempty"`

	// Denormalized aggregates, maintained by bookings and reviews.
	TotalBookings int     `bson:"total_bookings" json:"total_bookings"`
	TotalRevenue  int64   `bson:"total_revenue" json:"total_revenue"`
	AverageRating float64 `bson:"average_rating" json:"average_rating"`
	ReviewCount   int     `bson:"review_count" json:"review_count"`

	IsActive    bool      `bson:"is_active" json:"is_active"`
	IsFeatured  bool      `bson:"is_featured" json:"is_featured"`
	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
