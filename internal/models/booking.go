package models

import (
	"time"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
	BookingStatusRefunded  = "refunded"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// bookingTransitions is the allowed status graph. completed and refunded are
// terminal.
var bookingTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: {BookingStatusRefunded},
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusCompleted, BookingStatusRefunded:
		return true
	}
	return false
}

func CanTransitionBooking(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID      string `bson:"_id" json:"id"`
	UserID  string `bson:"user_id" json:"user_id"`
	HotelID string `bson:"hotel_id" json:"hotel_id"`

	FirstName string `bson:"first_name" json:"first_name" validate:"required"`
	LastName  string `bson:"last_name" json:"last_name" validate:"required"`
	Email     string `bson:"email" json:"email" validate:"required,email"`

	AdultCount int `bson:"adult_count" json:"adult_count" validate:"required,gt=0"`
	ChildCount int `bson:"child_count" json:"child_count" validate:"gte=0"`

	CheckIn   time.Time `bson:"check_in" json:"check_in"`
	CheckOut  time.Time `bson:"check_out" json:"check_out"`
	TotalCost int64     `bson:"total_cost" json:"total_cost"`

	Status        string `bson:"status" json:"status"`
	PaymentStatus string `bson:"payment_status" json:"payment_status"`

	PaymentIntentID    string `bson:"payment_intent_id" json:"payment_intent_id,omitempty"`
	PaymentMethod      string `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	CancellationReason string `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	RefundAmount       int64  `bson:"refund_amount,omitempty" json:"refund_amount,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Nights returns the whole-night count between check-in and check-out,
// computed on calendar days in UTC.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}
