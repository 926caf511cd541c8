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

type BookingRepo interface {
	// ConfirmBooking persists the booking and increments the hotel and user
	// aggregates in one transaction.
	ConfirmBooking(ctx context.Context, booking *Booking) error
	// DeleteBooking removes the booking and rolls the same aggregates back.
	DeleteBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]*Booking, error)
	FindUserBookingForHotel(ctx context.Context, userID, hotelID string) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string, set map[string]interface{}) (*Booking, error)
}

func (mdb *MongodbRepo) ConfirmBooking(ctx context.Context, booking *Booking) error {
	return mdb.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := mdb.GetCollection(BookingsColName).InsertOne(sc, booking); err != nil {
			// The unique payment_intent_id index stops one payment from
			// confirming a second booking.
			if mongo.IsDuplicateKeyError(err) {
				return apperr.New(apperr.Conflict, "this payment has already been used for a booking")
			}
			return fmt.Errorf("error inserting booking: %w", err)
		}
		if err := mdb.incHotelCounters(sc, booking.HotelID, 1, booking.TotalCost); err != nil {
			return err
		}
		return mdb.incUserCounters(sc, booking.UserID, 1, booking.TotalCost)
	})
}

func (mdb *MongodbRepo) DeleteBooking(ctx context.Context, booking *Booking) error {
	return mdb.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := mdb.GetCollection(BookingsColName).DeleteOne(sc, bson.M{"_id": booking.ID})
		if err != nil {
			return fmt.Errorf("error deleting booking: %w", err)
		}
		if res.DeletedCount == 0 {
			return apperr.New(apperr.NotFound, "booking not found")
		}
		if err := mdb.incHotelCounters(sc, booking.HotelID, -1, -booking.TotalCost); err != nil {
			return err
		}
		return mdb.incUserCounters(sc, booking.UserID, -1, -booking.TotalCost)
	})
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	var booking Booking
	err := mdb.GetCollection(BookingsColName).FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("error finding booking: %w", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) ListBookingsByUser(ctx context.Context, userID string) ([]*Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := mdb.GetCollection(BookingsColName).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// FindUserBookingForHotel returns the latest booking the user holds for a
// hotel, or nil when none exists. Cancelled bookings do not qualify.
func (mdb *MongodbRepo) FindUserBookingForHotel(ctx context.Context, userID, hotelID string) (*Booking, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var booking Booking
	err := mdb.GetCollection(BookingsColName).FindOne(ctx, bson.M{
		"user_id":  userID,
		"hotel_id": hotelID,
		"status":   bson.M{"$nin": bson.A{BookingStatusCancelled, BookingStatusRefunded}},
	}, opts).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding user booking: %w", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id, status string, set map[string]interface{}) (*Booking, error) {
	update := bson.M{"status": status, "updated_at": time.Now()}
	for k, v := range set {
		update[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking Booking
	err := mdb.GetCollection(BookingsColName).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		opts,
	).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking status: %w", err)
	}
	return &booking, nil
}
