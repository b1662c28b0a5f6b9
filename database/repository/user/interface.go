package userRepo

import (
	"errors"

	"wanderly/models"
)

// ErrNotFound is returned when no user matches the given ID.
var ErrNotFound = errors.New("user not found")

// ErrInsufficientCoins is returned when a conditional coin deduction
// found less balance than requested.
var ErrInsufficientCoins = errors.New("insufficient redeem coins")

// UserRepository defines the slice of user data access the lifecycle
// engine needs: coin balances and push tokens.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// DeductRedeemCoins atomically deducts coins, failing with
	// ErrInsufficientCoins when the balance is too low. The balance
	// check lives in the update filter, never in caller code.
	DeductRedeemCoins(id string, coins int64) error
	// CreditRedeemCoins adds cashback coins to the balance.
	CreditRedeemCoins(id string, coins int64) error
}
