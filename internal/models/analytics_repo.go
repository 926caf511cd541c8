package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

type HotelRevenue struct {
	HotelID      string `bson:"_id" json:"hotel_id"`
	Name         string `bson:"name" json:"name"`
	City         string `bson:"city" json:"city"`
	TotalRevenue int64  `bson:"total_revenue" json:"total_revenue"`
	Bookings     int64  `bson:"total_bookings" json:"total_bookings"`
}

type AnalyticsRepo interface {
	CountUsers(ctx context.Context) (int64, error)
	CountHotels(ctx context.Context) (int64, error)
	CountBookings(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (int64, error)
	BookingsByStatus(ctx context.Context) ([]StatusCount, error)
	TopHotelsByRevenue(ctx context.Context, limit int) ([]HotelRevenue, error)
	RecentBookings(ctx context.Context, limit int) ([]*Booking, error)
}

func (mdb *MongodbRepo) CountUsers(ctx context.Context) (int64, error) {
	return mdb.GetCollection(UsersColName).CountDocuments(ctx, bson.M{})
}

func (mdb *MongodbRepo) CountHotels(ctx context.Context) (int64, error) {
	return mdb.GetCollection(HotelsColName).CountDocuments(ctx, bson.M{})
}

func (mdb *MongodbRepo) CountBookings(ctx context.Context) (int64, error) {
	return mdb.GetCollection(BookingsColName).CountDocuments(ctx, bson.M{})
}

// TotalRevenue sums paid bookings rather than the per-hotel counters, so the
// dashboard reflects the source of truth.
func (mdb *MongodbRepo) TotalRevenue(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"payment_status": PaymentStatusPaid}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_cost"},
		}}},
	}

	cursor, err := mdb.GetCollection(BookingsColName).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("error decoding revenue: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

func (mdb *MongodbRepo) BookingsByStatus(ctx context.Context) ([]StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := mdb.GetCollection(BookingsColName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating booking statuses: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []StatusCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("error decoding booking statuses: %w", err)
	}
	return counts, nil
}

func (mdb *MongodbRepo) TopHotelsByRevenue(ctx context.Context, limit int) ([]HotelRevenue, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"total_revenue": bson.M{"$gt": 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_revenue", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"name":           1,
			"city":           1,
			"total_revenue":  1,
			"total_bookings": 1,
		}}},
	}

	cursor, err := mdb.GetCollection(HotelsColName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating top hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []HotelRevenue{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("error decoding top hotels: %w", err)
	}
	return hotels, nil
}

func (mdb *MongodbRepo) RecentBookings(ctx context.Context, limit int) ([]*Booking, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mdb.GetCollection(BookingsColName).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding recent bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding recent bookings: %w", err)
	}
	return bookings, nil
}
