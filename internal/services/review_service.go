package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kofi-annor/stayhub/internal/apperr"
	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/models"
)

type CreateReviewRequest struct {
	Rating          int            `json:"rating" binding:"required,min=1,max=5"`
	Comment         string         `json:"comment" binding:"required"`
	CategoryRatings map[string]int `json:"category_ratings"`
}

type ReviewService struct {
	reviews  models.ReviewRepo
	bookings models.BookingRepo
	hotels   models.HotelRepo
}

func NewReviewService(reviews models.ReviewRepo, bookings models.BookingRepo, hotels models.HotelRepo) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings, hotels: hotels}
}

// Create persists a review for a hotel the user has actually booked. The
// review is verified when its qualifying booking was confirmed or completed.
func (rs *ReviewService) Create(ctx context.Context, ac auth.Context, hotelID string, req *CreateReviewRequest) (*models.Review, error) {
	for category, rating := range req.CategoryRatings {
		if rating < 1 || rating > 5 {
			return nil, apperr.Newf(apperr.Validation, "category rating %q must be between 1 and 5", category)
		}
	}

	if _, err := rs.hotels.GetHotelByID(ctx, hotelID); err != nil {
		return nil, err
	}

	booking, err := rs.bookings.FindUserBookingForHotel(ctx, ac.UserID, hotelID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.New(apperr.Forbidden, "reviews require a booking at this hotel")
	}

	now := time.Now()
	review := &models.Review{
		ID:              uuid.NewString(),
		UserID:          ac.UserID,
		HotelID:         hotelID,
		BookingID:       booking.ID,
		Rating:          req.Rating,
		Comment:         req.Comment,
		CategoryRatings: req.CategoryRatings,
		IsVerified: booking.Status == models.BookingStatusConfirmed ||
			booking.Status == models.BookingStatusCompleted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := models.Validate.Struct(review); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid review data", err)
	}

	if err := rs.reviews.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (rs *ReviewService) ListByHotel(ctx context.Context, hotelID string) ([]*models.Review, error) {
	return rs.reviews.ListReviewsByHotel(ctx, hotelID)
}
