package booking

import (
	"context"
	"time"

	"wanderly/models"
)

// BookingService is the draft-and-checkout surface of the lifecycle
// engine.
type BookingService interface {
	CreateDraft(ctx context.Context, userID string, req CreateDraftRequest) (*models.BookingDraft, error)
	ApplySelection(ctx context.Context, userID, draftID string, swap SelectionSwap) (*models.BookingDraft, error)
	ApplyDiscounts(ctx context.Context, userID, draftID string, req ApplyDiscountsRequest) (*models.BookingDraft, error)
	GetDraft(ctx context.Context, userID, draftID string) (*models.BookingDraft, error)
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (*CheckoutResponse, error)
	GetBooking(userID, bookingID string) (*models.Booking, error)
	ListBookings(userID string) ([]models.Booking, error)
}

// PaymentService consumes gateway callbacks and drives bookings
// through their lifecycle.
type PaymentService interface {
	ProcessPayment(ctx context.Context, userID string, req models.ProcessPaymentRequest) (*models.ProcessPaymentResult, error)
	FailPayment(ctx context.Context, userID, paymentID string) error
	CreateNextPaymentIntent(ctx context.Context, userID, bookingID string) (*models.PaymentIntent, string, error)
}

// DraftStore holds in-progress booking drafts. Drafts expire with
// the store's TTL; an expired draft is an abandoned one.
type DraftStore interface {
	Save(ctx context.Context, draft *models.BookingDraft) error
	Get(ctx context.Context, draftID string) (*models.BookingDraft, error)
	Delete(ctx context.Context, draftID string) error
}

// Notifier sends user-facing pushes. Failures are logged, never
// propagated into payment results.
type Notifier interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// ReminderScheduler enqueues a due-date reminder for later delivery
// by the async worker. The core never owns the timer.
type ReminderScheduler interface {
	ScheduleDueReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}
