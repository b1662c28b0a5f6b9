package booking

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced through the transport layer.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodePaymentNotFound   = "PAYMENT_NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeAlreadyCompleted  = "PAYMENT_ALREADY_COMPLETED"
	CodeEmiOnly           = "EMI_ONLY"
	CodeNotEmiBooking     = "NOT_EMI_BOOKING"
	CodeInvalidCoupon     = "INVALID_COUPON"
	CodeInvalidRedemption = "INVALID_REDEMPTION"
	CodeConflict          = "CONFLICT"
)

// LifecycleError carries a stable code alongside the message.
type LifecycleError struct {
	Code    string
	Message string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewLifecycleError builds a coded error for the given taxonomy code.
func NewLifecycleError(code, msg string) error {
	return &LifecycleError{
		Code:    code,
		Message: msg,
	}
}

// AsLifecycleError unwraps err into a *LifecycleError if possible.
func AsLifecycleError(err error) (*LifecycleError, bool) {
	var le *LifecycleError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
