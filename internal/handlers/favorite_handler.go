package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/services"
)

func AddFavorite(f *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		hotelID := helpers.StringTrim(c.Param("hotelId"))
		if hotelID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("hotel ID is required"))
			return
		}

		fav, err := f.Add(c.Request.Context(), ac.UserID, hotelID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(fav, "hotel added to favorites"))
	}
}

func RemoveFavorite(f *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		hotelID := helpers.StringTrim(c.Param("hotelId"))
		if err := f.Remove(c.Request.Context(), ac.UserID, hotelID); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "hotel removed from favorites"))
	}
}

func ListFavorites(f *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		favs, err := f.List(c.Request.Context(), ac.UserID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(favs, ""))
	}
}
