package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/services"
)

type paymentIntentRequest struct {
	Nights int `json:"nights" binding:"required,gt=0"`
}

// CreatePaymentIntent quotes a stay and opens a payment intent for it.
func CreatePaymentIntent(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		hotelID := helpers.StringTrim(c.Param("hotelId"))

		var req paymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("nights must be a positive number"))
			return
		}

		res, err := b.CreatePaymentIntent(c.Request.Context(), ac, hotelID, req.Nights)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, ""))
	}
}

// ConfirmBooking finalizes a booking once its payment intent succeeded.
func ConfirmBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		hotelID := helpers.StringTrim(c.Param("hotelId"))

		var req services.ConfirmBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := b.ConfirmBooking(c.Request.Context(), ac, hotelID, &req)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "booking confirmed"))
	}
}

func ListMyBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		bookings, err := b.ListMyBookings(c.Request.Context(), ac.UserID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

// UpdateBookingStatus moves a booking along its lifecycle. Who may do what
// is decided in the service, per role.
func UpdateBookingStatus(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		bookingID := helpers.StringTrim(c.Param("id"))

		var req services.UpdateBookingStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := b.UpdateStatus(c.Request.Context(), ac, bookingID, &req)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, "booking updated"))
	}
}

// DeleteBooking removes a booking and rolls back its aggregates. Admin only;
// the role gate is on the route.
func DeleteBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID := helpers.StringTrim(c.Param("id"))
		if bookingID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("booking ID is required"))
			return
		}

		if err := b.Delete(c.Request.Context(), bookingID); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "booking deleted"))
	}
}
