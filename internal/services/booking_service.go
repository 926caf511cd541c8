package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kofi-annor/stayhub/internal/apperr"
	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/payments"
)

type PaymentIntentResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	TotalCost       int64  `json:"total_cost"`
}

type ConfirmBookingRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" binding:"required"`
	TotalCost       int64     `json:"total_cost" binding:"required"`
	CheckIn         time.Time `json:"check_in" binding:"required"`
	CheckOut        time.Time `json:"check_out" binding:"required"`
	// Nights is optional; when supplied it must agree with the date range.
	Nights        int    `json:"nights"`
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	AdultCount    int    `json:"adult_count" binding:"required,gt=0"`
	ChildCount    int    `json:"child_count" binding:"gte=0"`
	PaymentMethod string `json:"payment_method"`
}

type UpdateBookingStatusRequest struct {
	Status             string `json:"status" binding:"required"`
	CancellationReason string `json:"cancellation_reason"`
	RefundAmount       int64  `json:"refund_amount"`
}

type BookingService struct {
	bookings models.BookingRepo
	hotels   models.HotelRepo
	provider payments.Provider
}

func NewBookingService(bookings models.BookingRepo, hotels models.HotelRepo, provider payments.Provider) *BookingService {
	return &BookingService{bookings: bookings, hotels: hotels, provider: provider}
}

func (bs *BookingService) CreatePaymentIntent(ctx context.Context, ac auth.Context, hotelID string, nights int) (*PaymentIntentResponse, error) {
	if nights < 1 {
		return nil, apperr.New(apperr.Validation, "nights must be at least 1")
	}

	hotel, err := bs.hotels.GetHotelByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	totalCost := int64(hotel.PricePerNight) * int64(nights)
	intent, err := bs.provider.CreateIntent(ctx, totalCost, map[string]string{
		payments.MetadataHotelID: hotelID,
		payments.MetadataUserID:  ac.UserID,
	})
	if err != nil {
		return nil, err
	}

	return &PaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		TotalCost:       totalCost,
	}, nil
}

func (bs *BookingService) ConfirmBooking(ctx context.Context, ac auth.Context, hotelID string, req *ConfirmBookingRequest) (*models.Booking, error) {
	nights := models.Nights(req.CheckIn, req.CheckOut)
	if nights < 1 {
		return nil, apperr.New(apperr.Validation, "check-out must be at least one night after check-in")
	}
	// An independently supplied night count must agree exactly; it is never
	// silently corrected.
	if req.Nights != 0 && req.Nights != nights {
		return nil, apperr.Newf(apperr.Validation, "night count %d does not match the stay dates (%d nights)", req.Nights, nights)
	}

	hotel, err := bs.hotels.GetHotelByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	totalCost := int64(hotel.PricePerNight) * int64(nights)
	if req.TotalCost != totalCost {
		return nil, apperr.Newf(apperr.Validation, "total cost %d does not match price per night x nights (%d)", req.TotalCost, totalCost)
	}

	intent, err := bs.provider.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	// The intent must have been created for this hotel by this user;
	// anything else is an attempted intent reuse.
	if intent.Metadata[payments.MetadataHotelID] != hotelID || intent.Metadata[payments.MetadataUserID] != ac.UserID {
		return nil, apperr.New(apperr.Validation, "payment intent does not belong to this booking")
	}

	switch intent.Status {
	case payments.IntentStatusSucceeded:
		// paid, proceed
	case payments.IntentStatusRequiresPaymentMethod,
		payments.IntentStatusRequiresConfirmation,
		payments.IntentStatusRequiresAction,
		payments.IntentStatusProcessing,
		payments.IntentStatusRequiresCapture,
		payments.IntentStatusCanceled:
		return nil, apperr.Newf(apperr.Validation, "payment not completed, intent status: %s", intent.Status)
	default:
		return nil, apperr.Newf(apperr.Validation, "payment not completed, intent status: %s", intent.Status)
	}

	// The booking is priced at confirmation time; the money actually paid
	// must match it exactly.
	if intent.Amount != totalCost {
		return nil, apperr.Newf(apperr.Validation, "paid amount %d does not match booking cost %d", intent.Amount, totalCost)
	}

	now := time.Now()
	booking := &models.Booking{
		ID:              uuid.NewString(),
		UserID:          ac.UserID,
		HotelID:         hotelID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		AdultCount:      req.AdultCount,
		ChildCount:      req.ChildCount,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		TotalCost:       totalCost,
		Status:          models.BookingStatusConfirmed,
		PaymentStatus:   models.PaymentStatusPaid,
		PaymentIntentID: intent.ID,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := models.Validate.Struct(booking); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid booking data", err)
	}

	if err := bs.bookings.ConfirmBooking(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (bs *BookingService) ListMyBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	return bs.bookings.ListBookingsByUser(ctx, userID)
}

// UpdateStatus applies a guarded status transition. Admins may move any
// booking; hotel owners only bookings of their own hotels; users only their
// own bookings, and only to cancelled.
func (bs *BookingService) UpdateStatus(ctx context.Context, ac auth.Context, bookingID string, req *UpdateBookingStatusRequest) (*models.Booking, error) {
	if !models.ValidBookingStatus(req.Status) {
		return nil, apperr.Newf(apperr.Validation, "unknown booking status: %s", req.Status)
	}

	booking, err := bs.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch ac.Role {
	case auth.RoleAdmin:
		// any booking
	case auth.RoleHotelOwner:
		hotel, err := bs.hotels.GetHotelByID(ctx, booking.HotelID)
		if err != nil {
			return nil, err
		}
		if hotel.UserID != ac.UserID {
			return nil, apperr.New(apperr.Forbidden, "you can only manage bookings for your own hotels")
		}
	case auth.RoleUser:
		if booking.UserID != ac.UserID {
			return nil, apperr.New(apperr.Forbidden, "you can only manage your own bookings")
		}
		if req.Status != models.BookingStatusCancelled {
			return nil, apperr.New(apperr.Forbidden, "you may only cancel your bookings")
		}
	default:
		return nil, apperr.New(apperr.Forbidden, "insufficient role")
	}

	if !models.CanTransitionBooking(booking.Status, req.Status) {
		return nil, apperr.Newf(apperr.Validation, "cannot transition booking from %s to %s", booking.Status, req.Status)
	}

	set := map[string]interface{}{}
	if req.Status == models.BookingStatusCancelled && req.CancellationReason != "" {
		set["cancellation_reason"] = req.CancellationReason
	}
	if req.Status == models.BookingStatusRefunded {
		amount := req.RefundAmount
		if amount == 0 {
			amount = booking.TotalCost
		}
		set["refund_amount"] = amount
		set["payment_status"] = models.PaymentStatusRefunded
	}

	return bs.bookings.UpdateBookingStatus(ctx, bookingID, req.Status, set)
}

// Delete removes a booking and rolls the hotel/user aggregates back.
// Admin-only; the role gate lives in the route table.
func (bs *BookingService) Delete(ctx context.Context, bookingID string) error {
	booking, err := bs.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}
	return bs.bookings.DeleteBooking(ctx, booking)
}
