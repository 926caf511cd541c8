package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kofi-annor/stayhub/internal/models"
)

type FavoriteService struct {
	favorites models.FavoriteRepo
	hotels    models.HotelRepo
}

func NewFavoriteService(favorites models.FavoriteRepo, hotels models.HotelRepo) *FavoriteService {
	return &FavoriteService{favorites: favorites, hotels: hotels}
}

func (fs *FavoriteService) Add(ctx context.Context, userID, hotelID string) (*models.Favorite, error) {
	if _, err := fs.hotels.GetHotelByID(ctx, hotelID); err != nil {
		return nil, err
	}

	now := time.Now()
	fav := &models.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		HotelID:   hotelID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := fs.favorites.AddFavorite(ctx, fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (fs *FavoriteService) Remove(ctx context.Context, userID, hotelID string) error {
	return fs.favorites.RemoveFavorite(ctx, userID, hotelID)
}

func (fs *FavoriteService) List(ctx context.Context, userID string) ([]*models.FavoriteWithHotel, error) {
	return fs.favorites.ListFavoritesByUser(ctx, userID)
}
