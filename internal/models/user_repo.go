package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kofi-annor/stayhub/internal/apperr"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) error {
	_, err := mdb.GetCollection(UsersColName).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.New(apperr.Conflict, "an account with this email already exists")
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := mdb.GetCollection(UsersColName).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := mdb.GetCollection(UsersColName).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("error finding user by id: %w", err)
	}
	return &user, nil
}

// incUserCounters adjusts the denormalized booking aggregates. Runs inside
// the booking transaction via its session context.
func (mdb *MongodbRepo) incUserCounters(ctx context.Context, userID string, bookings int, spent int64) error {
	res, err := mdb.GetCollection(UsersColName).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$inc": bson.M{"total_bookings": bookings, "total_spent": spent},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("error updating user counters: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}
