package paymentRepo

import (
	"errors"

	"wanderly/models"
)

// ErrNotFound is returned when no payment intent matches the given ID.
var ErrNotFound = errors.New("payment not found")

// PaymentRepository defines payment intent data access. Completion is
// a conditional check-then-act: CompleteIfPending only flips a
// still-pending intent, so a retried gateway callback can detect the
// duplicate instead of settling twice.
type PaymentRepository interface {
	// Create inserts a new payment intent.
	Create(intent *models.PaymentIntent) error
	// GetByID retrieves a payment intent by its payment ID.
	GetByID(paymentID string) (*models.PaymentIntent, error)
	// CompleteIfPending marks the intent completed with the given
	// transaction ID and method, only if it is still pending. Returns
	// false when the intent was already settled or failed.
	CompleteIfPending(paymentID, transactionID, method string) (bool, error)
	// FailIfPending marks the intent failed, only if still pending.
	FailIfPending(paymentID string) (bool, error)
	// RevertToPending undoes a completion after a downstream write
	// failed, so the payment can be retried.
	RevertToPending(paymentID string) error
}
