package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/services"
)

// maxUploadBytes caps a hotel submission, images included.
const maxUploadBytes = 32 << 20

// bindHotelForm reads a multipart hotel submission. Scalar fields arrive as
// form values, contact/policies as optional JSON blobs, images as files under
// "image_files" and kept URLs under "image_urls".
func bindHotelForm(c *gin.Context) (*models.Hotel, []*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, err
	}

	hotel := &models.Hotel{
		Name:        helpers.StringTrim(c.PostForm("name")),
		City:        helpers.StringTrim(c.PostForm("city")),
		Country:     helpers.StringTrim(c.PostForm("country")),
		Description: c.PostForm("description"),
		Types:       c.PostFormArray("types"),
		Facilities:  c.PostFormArray("facilities"),
		ImageURLs:   c.PostFormArray("image_urls"),
	}

	hotel.StarRating, _ = strconv.Atoi(c.PostForm("star_rating"))
	hotel.PricePerNight, _ = strconv.Atoi(c.PostForm("price_per_night"))
	hotel.AdultCount, _ = strconv.Atoi(c.PostForm("adult_count"))
	hotel.ChildCount, _ = strconv.Atoi(c.PostForm("child_count"))
	hotel.IsFeatured, _ = strconv.ParseBool(c.PostForm("is_featured"))

	if raw := c.PostForm("contact"); raw != "" {
		var contact models.HotelContact
		if err := json.Unmarshal([]byte(raw), &contact); err != nil {
			return nil, nil, err
		}
		hotel.Contact = &contact
	}
	if raw := c.PostForm("policies"); raw != "" {
		var policies models.HotelPolicies
		if err := json.Unmarshal([]byte(raw), &policies); err != nil {
			return nil, nil, err
		}
		hotel.Policies = &policies
	}

	var files []*multipart.FileHeader
	if form := c.Request.MultipartForm; form != nil {
		files = form.File["image_files"]
	}
	return hotel, files, nil
}

func CreateHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		hotel, files, err := bindHotelForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid hotel form: "+err.Error()))
			return
		}

		created, err := h.CreateHotel(c.Request.Context(), ac.UserID, hotel, files)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(created, "hotel created successfully"))
	}
}

func UpdateHotel(h *services.HotelService) gin.HandlerFunc {
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

		hotel, files, err := bindHotelForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid hotel form: "+err.Error()))
			return
		}

		updated, err := h.UpdateHotel(c.Request.Context(), ac.UserID, hotelID, hotel, files)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(updated, "hotel updated successfully"))
	}
}

func ListMyHotels(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		hotels, err := h.ListMyHotels(c.Request.Context(), ac.UserID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(hotels, ""))
	}
}
