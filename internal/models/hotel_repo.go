package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kofi-annor/stayhub/internal/apperr"
)

type HotelRepo interface {
	CreateHotel(ctx context.Context, hotel *Hotel) error
	GetHotelByID(ctx context.Context, id string) (*Hotel, error)
	UpdateHotelForOwner(ctx context.Context, hotelID, ownerID string, update bson.M) (*Hotel, error)
	ListHotelsByOwner(ctx context.Context, ownerID string) ([]*Hotel, error)
	ListFeaturedHotels(ctx context.Context, limit int) ([]*Hotel, error)
	SearchHotels(ctx context.Context, filter bson.M, sort bson.D, page int) ([]*Hotel, int64, error)
}

func (mdb *MongodbRepo) CreateHotel(ctx context.Context, hotel *Hotel) error {
	_, err := mdb.GetCollection(HotelsColName).InsertOne(ctx, hotel)
	if err != nil {
		return fmt.Errorf("error inserting hotel: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetHotelByID(ctx context.Context, id string) (*Hotel, error) {
	var hotel Hotel
	err := mdb.GetCollection(HotelsColName).FindOne(ctx, bson.M{"_id": id}).Decode(&hotel)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "hotel not found")
	}
	if err != nil {
		return nil, fmt.Errorf("error finding hotel: %w", err)
	}
	return &hotel, nil
}

// UpdateHotelForOwner applies update only when the hotel belongs to ownerID.
// An owner mismatch is indistinguishable from a missing hotel on purpose:
// callers get NotFound either way.
func (mdb *MongodbRepo) UpdateHotelForOwner(ctx context.Context, hotelID, ownerID string, update bson.M) (*Hotel, error) {
	update["last_updated"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var hotel Hotel
	err := mdb.GetCollection(HotelsColName).FindOneAndUpdate(ctx,
		bson.M{"_id": hotelID, "user_id": ownerID},
		bson.M{"$set": update},
		opts,
	).Decode(&hotel)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "hotel not found")
	}
	if err != nil {
		return nil, fmt.Errorf("error updating hotel: %w", err)
	}
	return &hotel, nil
}

func (mdb *MongodbRepo) ListHotelsByOwner(ctx context.Context, ownerID string) ([]*Hotel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}})
	cursor, err := mdb.GetCollection(HotelsColName).Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding owner hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []*Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("error decoding owner hotels: %w", err)
	}
	return hotels, nil
}

func (mdb *MongodbRepo) ListFeaturedHotels(ctx context.Context, limit int) ([]*Hotel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "is_featured", Value: -1}, {Key: "last_updated", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := mdb.GetCollection(HotelsColName).Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding featured hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []*Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("error decoding featured hotels: %w", err)
	}
	return hotels, nil
}

func (mdb *MongodbRepo) SearchHotels(ctx context.Context, filter bson.M, sort bson.D, page int) ([]*Hotel, int64, error) {
	col := mdb.GetCollection(HotelsColName)

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting hotels: %w", err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * SearchPageSize)).
		SetLimit(SearchPageSize)

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []*Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, 0, fmt.Errorf("error decoding hotels: %w", err)
	}
	return hotels, total, nil
}

// incHotelCounters adjusts the denormalized booking aggregates. Runs inside
// the booking transaction via its session context.
func (mdb *MongodbRepo) incHotelCounters(ctx context.Context, hotelID string, bookings int, revenue int64) error {
	res, err := mdb.GetCollection(HotelsColName).UpdateOne(ctx,
		bson.M{"_id": hotelID},
		bson.M{
			"$inc": bson.M{"total_bookings": bookings, "total_revenue": revenue},
			"$set": bson.M{"last_updated": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("error updating hotel counters: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "hotel not found")
	}
	return nil
}

// applyReviewRating folds one new rating into review_count/average_rating
// server-side so concurrent reviews cannot lose an increment.
func (mdb *MongodbRepo) applyReviewRating(ctx context.Context, hotelID string, rating int) error {
	newCount := bson.M{"$add": bson.A{"$review_count", 1}}
	newAverage := bson.M{"$round": bson.A{
		bson.M{"$divide": bson.A{
			bson.M{"$add": bson.A{
				bson.M{"$multiply": bson.A{"$average_rating", "$review_count"}},
				rating,
			}},
			newCount,
		}},
		1,
	}}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"review_count":   newCount,
			"average_rating": newAverage,
			"last_updated":   "$$NOW",
		}}},
	}

	res, err := mdb.GetCollection(HotelsColName).UpdateOne(ctx, bson.M{"_id": hotelID}, pipeline)
	if err != nil {
		return fmt.Errorf("error applying review rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "hotel not found")
	}
	return nil
}
