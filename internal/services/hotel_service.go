package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/kofi-annor/stayhub/internal/apperr"
	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
)

type HotelService struct {
	hotels models.HotelRepo
	cld    *cloudinary.Cloudinary
}

func NewHotelService(hotels models.HotelRepo, cld *cloudinary.Cloudinary) *HotelService {
	return &HotelService{hotels: hotels, cld: cld}
}

func (hs *HotelService) CreateHotel(ctx context.Context, ownerID string, hotel *models.Hotel, images []*multipart.FileHeader) (*models.Hotel, error) {
	now := time.Now()
	hotel.ID = uuid.NewString()
	hotel.UserID = ownerID
	hotel.IsActive = true
	hotel.TotalBookings = 0
	hotel.TotalRevenue = 0
	hotel.AverageRating = 0
	hotel.ReviewCount = 0
	hotel.LastUpdated = now
	hotel.CreatedAt = now

	if err := models.Validate.Struct(hotel); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid hotel data", err)
	}

	if len(images) > 0 {
		urls, err := helpers.UploadImages(ctx, hs.cld, images, helpers.HotelFolder)
		if err != nil {
			return nil, err
		}
		hotel.ImageURLs = urls
	}

	if err := hs.hotels.CreateHotel(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

// UpdateHotel is owner-scoped: a hotel that exists but belongs to someone
// else reports NotFound, never Forbidden.
func (hs *HotelService) UpdateHotel(ctx context.Context, ownerID, hotelID string, hotel *models.Hotel, images []*multipart.FileHeader) (*models.Hotel, error) {
	if err := models.Validate.StructExcept(hotel, "ID", "UserID"); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid hotel data", err)
	}

	update := bson.M{
		"name":            hotel.Name,
		"city":            hotel.City,
		"country":         hotel.Country,
		"description":     hotel.Description,
		"types":           hotel.Types,
		"facilities":      hotel.Facilities,
		"star_rating":     hotel.StarRating,
		"price_per_night": hotel.PricePerNight,
		"adult_count":     hotel.AdultCount,
		"child_count":     hotel.ChildCount,
		"is_featured":     hotel.IsFeatured,
	}
	if hotel.Contact != nil {
		update["contact"] = hotel.Contact
	}
	if hotel.Policies != nil {
		update["policies"] = hotel.Policies
	}

	if len(images) > 0 {
		urls, err := helpers.UploadImages(ctx, hs.cld, images, helpers.HotelFolder)
		if err != nil {
			return nil, err
		}
		// New uploads are appended after the URLs the client chose to keep.
		update["image_urls"] = append(hotel.ImageURLs, urls...)
	} else if hotel.ImageURLs != nil {
		update["image_urls"] = hotel.ImageURLs
	}

	return hs.hotels.UpdateHotelForOwner(ctx, hotelID, ownerID, update)
}

func (hs *HotelService) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	return hs.hotels.GetHotelByID(ctx, id)
}

func (hs *HotelService) ListMyHotels(ctx context.Context, ownerID string) ([]*models.Hotel, error) {
	return hs.hotels.ListHotelsByOwner(ctx, ownerID)
}

func (hs *HotelService) ListFeatured(ctx context.Context) ([]*models.Hotel, error) {
	return hs.hotels.ListFeaturedHotels(ctx, 8)
}

func (hs *HotelService) Search(ctx context.Context, params models.SearchParams) (*models.SearchResult, error) {
	filter := models.BuildSearchFilter(params)
	sort := models.SearchSort(params.SortOption)
	page := models.ParsePage(params.Page)

	hotels, total, err := hs.hotels.SearchHotels(ctx, filter, sort, page)
	if err != nil {
		return nil, err
	}

	return &models.SearchResult{
		Data:       hotels,
		Pagination: models.NewPagination(total, page),
	}, nil
}
