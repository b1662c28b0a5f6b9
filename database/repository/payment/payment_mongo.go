package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"wanderly/database"
	"wanderly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	coll := database.MongoClient.Database("wanderly").Collection("payments")
	repo := &MongoPaymentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "payment_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment intent document.
func (r *MongoPaymentRepo) Create(intent *models.PaymentIntent) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	intent.CreatedAt = now
	intent.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, intent)
	if err != nil {
		return fmt.Errorf("failed to create payment intent: %w", err)
	}
	return nil
}

// GetByID retrieves a payment intent by its payment ID.
func (r *MongoPaymentRepo) GetByID(paymentID string) (*models.PaymentIntent, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var intent models.PaymentIntent
	if err := r.coll.FindOne(ctx, bson.M{"payment_id": paymentID}).Decode(&intent); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment with id %s: %w", paymentID, err)
	}
	return &intent, nil
}

// CompleteIfPending flips a pending intent to completed. The pending
// status sits in the filter, so only one of two racing callbacks can
// match; the other sees MatchedCount == 0.
func (r *MongoPaymentRepo) CompleteIfPending(paymentID, transactionID, method string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"payment_id": paymentID, "status": models.PaymentStatusPending}
	update := bson.M{"$set": bson.M{
		"status":         models.PaymentStatusCompleted,
		"transaction_id": transactionID,
		"method":         method,
		"updated_at":     time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to complete payment %s: %w", paymentID, err)
	}
	return result.MatchedCount > 0, nil
}

// FailIfPending flips a pending intent to failed.
func (r *MongoPaymentRepo) FailIfPending(paymentID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"payment_id": paymentID, "status": models.PaymentStatusPending}
	update := bson.M{"$set": bson.M{
		"status":     models.PaymentStatusFailed,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark payment %s failed: %w", paymentID, err)
	}
	return result.MatchedCount > 0, nil
}

// RevertToPending restores a completed intent so it can be retried
// after the booking write behind it failed.
func (r *MongoPaymentRepo) RevertToPending(paymentID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"payment_id": paymentID, "status": models.PaymentStatusCompleted}
	update := bson.M{"$set": bson.M{
		"status":         models.PaymentStatusPending,
		"transaction_id": "",
		"updated_at":     time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to revert payment %s: %w", paymentID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment %s is not completed, nothing to revert", paymentID)
	}
	return nil
}
