package models

import "time"

// PaymentIntent is the pending payment the gateway settles. The
// intent's PaymentID is the idempotency key for reconciliation:
// completing the same intent twice must yield the first result.
type PaymentIntent struct {
	PaymentID         string    `bson:"payment_id" json:"paymentId"`
	UserID            string    `bson:"user_id" json:"userId"`
	BookingID         string    `bson:"booking_id" json:"bookingId"`
	Amount            int64     `bson:"amount" json:"amount"`
	Method            string    `bson:"method,omitempty" json:"method,omitempty"`
	Status            string    `bson:"status" json:"status"` // "pending", "completed" or "failed"
	IsEmiPayment      bool      `bson:"is_emi_payment" json:"isEmiPayment"`
	InstallmentNumber int       `bson:"installment_number,omitempty" json:"installmentNumber,omitempty"`
	TransactionID     string    `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	GatewayRef        string    `bson:"gateway_ref,omitempty" json:"-"`
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updatedAt"`
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// ProcessPaymentRequest is the gateway callback payload.
type ProcessPaymentRequest struct {
	PaymentID     string `json:"paymentId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// ProcessPaymentResult reports a settled payment back to the caller.
type ProcessPaymentResult struct {
	Success           bool   `json:"success"`
	TransactionID     string `json:"transactionId"`
	Status            string `json:"status"`
	IsEmiPayment      bool   `json:"isEmiPayment"`
	InstallmentNumber int    `json:"installmentNumber,omitempty"`
	BookingStatus     string `json:"bookingStatus"`
}
