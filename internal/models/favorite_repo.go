package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kofi-annor/stayhub/internal/apperr"
)

type FavoriteRepo interface {
	AddFavorite(ctx context.Context, fav *Favorite) error
	RemoveFavorite(ctx context.Context, userID, hotelID string) error
	ListFavoritesByUser(ctx context.Context, userID string) ([]*FavoriteWithHotel, error)
	IsFavorite(ctx context.Context, userID, hotelID string) (bool, error)
}

func (mdb *MongodbRepo) AddFavorite(ctx context.Context, fav *Favorite) error {
	_, err := mdb.GetCollection(FavoritesColName).InsertOne(ctx, fav)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.New(apperr.Conflict, "hotel is already in your favorites")
		}
		return fmt.Errorf("error inserting favorite: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) RemoveFavorite(ctx context.Context, userID, hotelID string) error {
	res, err := mdb.GetCollection(FavoritesColName).DeleteOne(ctx, bson.M{
		"user_id":  userID,
		"hotel_id": hotelID,
	})
	if err != nil {
		return fmt.Errorf("error deleting favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "favorite not found")
	}
	return nil
}

func (mdb *MongodbRepo) ListFavoritesByUser(ctx context.Context, userID string) ([]*FavoriteWithHotel, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         HotelsColName,
			"localField":   "hotel_id",
			"foreignField": "_id",
			"as":           "hotel",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$hotel", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := mdb.GetCollection(FavoritesColName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating favorites: %w", err)
	}
	defer cursor.Close(ctx)

	favorites := []*FavoriteWithHotel{}
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, fmt.Errorf("error decoding favorites: %w", err)
	}
	return favorites, nil
}

func (mdb *MongodbRepo) IsFavorite(ctx context.Context, userID, hotelID string) (bool, error) {
	count, err := mdb.GetCollection(FavoritesColName).CountDocuments(ctx, bson.M{
		"user_id":  userID,
		"hotel_id": hotelID,
	})
	if err != nil {
		return false, fmt.Errorf("error counting favorites: %w", err)
	}
	return count > 0, nil
}
