package models

import "time"

// User carries the slice of the account the lifecycle engine needs:
// the loyalty coin balance and the push token. Account issuance and
// profile management live in an external service.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	Name        string    `bson:"name" json:"name"`
	RedeemCoins int64     `bson:"redeem_coins" json:"redeemCoins"`
	FCMToken    string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
