package couponRepo

import (
	"context"
	"fmt"
	"time"

	"wanderly/database"
	"wanderly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCouponRepo implements CouponRepository using MongoDB.
type MongoCouponRepo struct {
	coll *mongo.Collection
}

// NewMongoCouponRepo creates a new instance of CouponRepository using MongoDB.
func NewMongoCouponRepo() CouponRepository {
	coll := database.MongoClient.Database("wanderly").Collection("coupons")
	return &MongoCouponRepo{coll: coll}
}

// GetByCode retrieves a coupon by its code.
func (r *MongoCouponRepo) GetByCode(code string) (*models.Coupon, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var coupon models.Coupon
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&coupon); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch coupon %s: %w", code, err)
	}
	return &coupon, nil
}
