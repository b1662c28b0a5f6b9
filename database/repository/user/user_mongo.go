package userRepo

import (
	"context"
	"fmt"
	"time"

	"wanderly/database"
	"wanderly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database("wanderly").Collection("users")
	return &MongoUserRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

// DeductRedeemCoins deducts coins with the balance check in the
// filter, so the deduction can never drive the balance negative.
func (r *MongoUserRepo) DeductRedeemCoins(id string, coins int64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "redeem_coins": bson.M{"$gte": coins}}
	update := bson.M{
		"$inc": bson.M{"redeem_coins": -coins},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to deduct coins for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrInsufficientCoins
	}
	return nil
}

// CreditRedeemCoins adds cashback coins to the balance.
func (r *MongoUserRepo) CreditRedeemCoins(id string, coins int64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$inc": bson.M{"redeem_coins": coins},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to credit coins for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
