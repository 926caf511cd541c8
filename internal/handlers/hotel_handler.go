package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/services"
)

// SearchHotels serves the public paginated search.
func SearchHotels(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := models.SearchParams{
			Destination: c.Query("destination"),
			Facilities:  c.QueryArray("facilities"),
			Types:       c.QueryArray("types"),
			Stars:       c.QueryArray("stars"),
			MaxPrice:    c.Query("maxPrice"),
			AdultCount:  c.Query("adultCount"),
			ChildCount:  c.Query("childCount"),
			SortOption:  c.Query("sortOption"),
			Page:        c.Query("page"),
		}

		result, err := h.Search(c.Request.Context(), params)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(result, ""))
	}
}

func GetHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID := helpers.StringTrim(c.Param("hotelId"))
		if hotelID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("hotel ID is required"))
			return
		}

		hotel, err := h.GetHotel(c.Request.Context(), hotelID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(hotel, ""))
	}
}

func ListFeaturedHotels(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotels, err := h.ListFeatured(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(hotels, ""))
	}
}
