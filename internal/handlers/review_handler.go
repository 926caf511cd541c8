package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/services"
)

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		hotelID := helpers.StringTrim(c.Param("hotelId"))

		var req services.CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		review, err := r.Create(c.Request.Context(), ac, hotelID, &req)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(review, "review submitted"))
	}
}

func ListHotelReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID := helpers.StringTrim(c.Param("hotelId"))
		if hotelID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("hotel ID is required"))
			return
		}

		reviews, err := r.ListByHotel(c.Request.Context(), hotelID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}
