package models

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	UsersColName     = "users"
	HotelsColName    = "hotels"
	BookingsColName  = "bookings"
	ReviewsColName   = "reviews"
	FavoritesColName = "favorites"
)

type MongodbRepo struct {
	client *mongo.Client
	dbName string
}

func MongodbNewRepo(client *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{client: client, dbName: dbName}
}

func (mdb *MongodbRepo) GetCollection(colName string) *mongo.Collection {
	return mdb.client.Database(mdb.dbName).Collection(colName)
}

// withTransaction runs fn in a single multi-document transaction so a
// booking or review write and its counter updates land together.
func (mdb *MongodbRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := mdb.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the uniqueness constraints the data model relies on:
// one account per email, one review per (user, hotel), one favorite per
// (user, hotel), one booking per payment intent.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	type colIndexes struct {
		col     string
		indexes []mongo.IndexModel
	}

	all := []colIndexes{
		{
			col: UsersColName,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("email_unique"),
				},
			},
		},
		{
			col: HotelsColName,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}},
					Options: options.Index().SetName("owner_idx"),
				},
				{
					Keys:    bson.D{{Key: "city", Value: 1}, {Key: "country", Value: 1}},
					Options: options.Index().SetName("destination_idx"),
				},
			},
		},
		{
			col: BookingsColName,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
					Options: options.Index().SetName("user_created_idx"),
				},
				{
					Keys:    bson.D{{Key: "hotel_id", Value: 1}},
					Options: options.Index().SetName("hotel_idx"),
				},
				{
					Keys:    bson.D{{Key: "payment_intent_id", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("payment_intent_unique"),
				},
			},
		},
		{
			col: ReviewsColName,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "hotel_id", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("user_hotel_unique"),
				},
				{
					Keys:    bson.D{{Key: "hotel_id", Value: 1}, {Key: "created_at", Value: -1}},
					Options: options.Index().SetName("hotel_created_idx"),
				},
			},
		},
		{
			col: FavoritesColName,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "hotel_id", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("user_hotel_unique"),
				},
			},
		},
	}

	for _, ci := range all {
		if _, err := mdb.GetCollection(ci.col).Indexes().CreateMany(ctx, ci.indexes); err != nil {
			return fmt.Errorf("error creating indexes on %s: %w", ci.col, err)
		}
	}
	return nil
}
