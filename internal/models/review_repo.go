package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kofi-annor/stayhub/internal/apperr"
)

type ReviewRepo interface {
	// CreateReview inserts the review and folds its rating into the hotel
	// aggregates in one transaction. A duplicate (user, hotel) pair aborts
	// with Conflict before any counter moves.
	CreateReview(ctx context.Context, review *Review) error
	ListReviewsByHotel(ctx context.Context, hotelID string) ([]*Review, error)
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) error {
	return mdb.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := mdb.GetCollection(ReviewsColName).InsertOne(sc, review); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return apperr.New(apperr.Conflict, "you have already reviewed this hotel")
			}
			return fmt.Errorf("error inserting review: %w", err)
		}
		return mdb.applyReviewRating(sc, review.HotelID, review.Rating)
	})
}

func (mdb *MongodbRepo) ListReviewsByHotel(ctx context.Context, hotelID string) ([]*Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := mdb.GetCollection(ReviewsColName).Find(ctx, bson.M{"hotel_id": hotelID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}
