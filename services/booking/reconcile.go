package booking

import (
	"context"
	"errors"
	"math"
	"time"

	bookingRepo "wanderly/database/repository/booking"
	paymentRepo "wanderly/database/repository/payment"
	userRepo "wanderly/database/repository/user"
	"wanderly/models"
	"wanderly/services/gateway"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPaymentService implements PaymentService. Every mutating
// path runs under a per-booking lock and finishes with a conditional
// write, so two deliveries of the same gateway event can never
// double-credit an installment or double-transition a booking.
type DefaultPaymentService struct {
	BookingRepo bookingRepo.BookingRepository
	PaymentRepo paymentRepo.PaymentRepository
	UserRepo    userRepo.UserRepository
	Gateway     gateway.PaymentGateway
	Notifier    Notifier          // optional
	Reminders   ReminderScheduler // optional
	Logger      *zap.Logger

	CashbackPercent float64

	// Clock is overridable in tests; nil means time.Now.
	Clock func() time.Time

	locks keyedMutex
}

func (s *DefaultPaymentService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// ProcessPayment settles a pending payment intent against its
// booking. A redelivered event for an already-completed intent is
// absorbed: the prior result comes back, not an error.
func (s *DefaultPaymentService) ProcessPayment(ctx context.Context, userID string, req models.ProcessPaymentRequest) (*models.ProcessPaymentResult, error) {
	if req.PaymentID == "" || req.PaymentMethod == "" {
		return nil, NewLifecycleError(CodeValidation, "paymentId and paymentMethod are required")
	}

	intent, err := s.loadAuthorizedIntent(userID, req.PaymentID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(intent.BookingID)
	defer unlock()

	// Re-read under the lock: the check and the act must not be
	// separable by a concurrent delivery of the same event.
	intent, err = s.PaymentRepo.GetByID(req.PaymentID)
	if err != nil {
		return nil, s.mapPaymentErr(err)
	}
	switch intent.Status {
	case models.PaymentStatusCompleted:
		return s.priorResult(intent)
	case models.PaymentStatusFailed:
		return nil, NewLifecycleError(CodeConflict, "payment intent has failed; create a new payment")
	}

	b, err := s.BookingRepo.GetByID(intent.BookingID)
	if err != nil {
		return nil, s.mapBookingErr(err)
	}
	if Status(b.Status) == StatusFailed {
		return nil, NewLifecycleError(CodeConflict, "booking attempt has failed; start a new booking")
	}

	// Validate the payment/booking pairing before any mutation.
	if b.EMIDetails != nil {
		if !intent.IsEmiPayment {
			return nil, NewLifecycleError(CodeEmiOnly, "booking carries an EMI plan; only installment payments are accepted")
		}
		n := intent.InstallmentNumber
		if n < 1 || n > len(b.EMIDetails.Schedule) {
			return nil, NewLifecycleError(CodeValidation, "installment number out of range")
		}
		if b.EMIDetails.Schedule[n-1].Status == models.InstallmentStatusPaid {
			// A different intent already settled this installment
			// (same-intent redelivery was absorbed above).
			return nil, NewLifecycleError(CodeAlreadyCompleted, "installment is already paid")
		}
	} else if intent.IsEmiPayment {
		return nil, NewLifecycleError(CodeNotEmiBooking, "booking has no EMI plan; installment payment rejected")
	}

	transactionID := "txn_" + uuid.New().String()
	ok, err := s.PaymentRepo.CompleteIfPending(intent.PaymentID, transactionID, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a cross-process race; the winner's result stands.
		intent, err = s.PaymentRepo.GetByID(req.PaymentID)
		if err != nil {
			return nil, s.mapPaymentErr(err)
		}
		if intent.Status == models.PaymentStatusCompleted {
			return s.priorResult(intent)
		}
		return nil, NewLifecycleError(CodeConflict, "payment could not be completed")
	}
	intent.Status = models.PaymentStatusCompleted
	intent.TransactionID = transactionID

	now := s.now()
	if b.EMIDetails != nil {
		s.applyInstallment(b, intent, transactionID, now)
	} else {
		s.applySettlement(b, intent, now)
	}

	if err := s.BookingRepo.UpdateGuarded(b); err != nil {
		// Undo the intent completion so the caller can retry; the
		// booking was not touched.
		if revertErr := s.PaymentRepo.RevertToPending(intent.PaymentID); revertErr != nil {
			s.Logger.Error("Failed to revert payment after booking write failure",
				zap.String("paymentId", intent.PaymentID), zap.Error(revertErr))
		}
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			return nil, NewLifecycleError(CodeConflict, "booking was modified concurrently; retry the payment")
		}
		return nil, err
	}

	s.afterSettlement(ctx, b, intent, now)

	return &models.ProcessPaymentResult{
		Success:           true,
		TransactionID:     transactionID,
		Status:            models.PaymentStatusCompleted,
		IsEmiPayment:      intent.IsEmiPayment,
		InstallmentNumber: intent.InstallmentNumber,
		BookingStatus:     b.Status,
	}, nil
}

// applyInstallment marks the matched installment paid and advances
// the booking.
func (s *DefaultPaymentService) applyInstallment(b *models.Booking, intent *models.PaymentIntent, transactionID string, now time.Time) {
	emi := b.EMIDetails
	inst := &emi.Schedule[intent.InstallmentNumber-1]

	inst.Status = models.InstallmentStatusPaid
	inst.TransactionID = transactionID
	paidAt := now
	inst.PaidAt = &paidAt
	emi.PaidCount++
	emi.NextDueDate = NextDueDate(emi.Schedule)

	b.BalanceAmount -= InstallmentPrincipal(*inst, emi.ProcessingFee)
	if b.BalanceAmount < 0 {
		b.BalanceAmount = 0
	}

	if emi.PaidCount == 1 {
		b.IsPrepaid = true
		b.PaymentDate = &paidAt
		_ = Transition(b, StatusWaiting)
	}
	if emi.PaidCount == emi.Months {
		b.BalanceAmount = 0
		_ = Transition(b, StatusConfirmed)
	}
}

// applySettlement applies a lump payment to a non-EMI booking.
func (s *DefaultPaymentService) applySettlement(b *models.Booking, intent *models.PaymentIntent, now time.Time) {
	if !b.IsPrepaid {
		b.IsPrepaid = true
		paidAt := now
		b.PaymentDate = &paidAt
	}

	b.BalanceAmount -= intent.Amount
	if b.BalanceAmount <= 0 {
		b.BalanceAmount = 0
		_ = Transition(b, StatusConfirmed)
	} else {
		_ = Transition(b, StatusWaiting)
	}
}

// afterSettlement runs the log-only side effects: cashback, pushes,
// due reminders. None of them can fail the payment.
func (s *DefaultPaymentService) afterSettlement(ctx context.Context, b *models.Booking, intent *models.PaymentIntent, now time.Time) {
	if Status(b.Status) == StatusConfirmed && s.CashbackPercent > 0 {
		coins := int64(math.Floor(float64(b.FinalPrice) * s.CashbackPercent / 100))
		if coins > 0 {
			if err := s.UserRepo.CreditRedeemCoins(b.UserID, coins); err != nil {
				s.Logger.Error("Failed to credit cashback coins",
					zap.String("bookingId", b.ID), zap.Error(err))
			}
		}
	}

	if s.Notifier != nil {
		data := map[string]string{
			"bookingId":     b.ID,
			"transactionId": intent.TransactionID,
			"status":        b.Status,
		}
		if err := s.Notifier.SendUserPushNotification(ctx, b.UserID,
			"Payment received", "Your payment was successful.", data); err != nil {
			s.Logger.Warn("Failed to send payment confirmation push",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}

	if s.Reminders != nil && b.EMIDetails != nil {
		var next *models.Installment
		for i := range b.EMIDetails.Schedule {
			if b.EMIDetails.Schedule[i].Status == models.InstallmentStatusPending {
				next = &b.EMIDetails.Schedule[i]
				break
			}
		}
		if next == nil {
			return
		}
		due := next.DueDate
		payload := models.ReminderPayload{
			BookingID:         b.ID,
			UserID:            b.UserID,
			InstallmentNumber: next.InstallmentNumber,
			DueDate:           due.Format("2006-01-02"),
			Title:             "Installment due soon",
			Body:              "Your next installment is due on " + due.Format("02 Jan 2006") + ".",
		}
		fireAt := due.AddDate(0, 0, -1)
		if fireAt.Before(now) {
			fireAt = now
		}
		if err := s.Reminders.ScheduleDueReminder(ctx, payload, fireAt); err != nil {
			s.Logger.Warn("Failed to schedule due reminder",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
}

// priorResult rebuilds the result of an already-completed intent so a
// redelivered event is a no-op with the same answer.
func (s *DefaultPaymentService) priorResult(intent *models.PaymentIntent) (*models.ProcessPaymentResult, error) {
	bookingStatus := ""
	if b, err := s.BookingRepo.GetByID(intent.BookingID); err == nil {
		bookingStatus = b.Status
	}
	return &models.ProcessPaymentResult{
		Success:           true,
		TransactionID:     intent.TransactionID,
		Status:            models.PaymentStatusCompleted,
		IsEmiPayment:      intent.IsEmiPayment,
		InstallmentNumber: intent.InstallmentNumber,
		BookingStatus:     bookingStatus,
	}, nil
}

// FailPayment handles an explicit gateway failure callback or
// operator cancellation. The booking only fails if no money was ever
// captured.
func (s *DefaultPaymentService) FailPayment(ctx context.Context, userID, paymentID string) error {
	intent, err := s.loadAuthorizedIntent(userID, paymentID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(intent.BookingID)
	defer unlock()

	ok, err := s.PaymentRepo.FailIfPending(paymentID)
	if err != nil {
		return err
	}
	if !ok {
		intent, err = s.PaymentRepo.GetByID(paymentID)
		if err != nil {
			return s.mapPaymentErr(err)
		}
		if intent.Status == models.PaymentStatusCompleted {
			return NewLifecycleError(CodeAlreadyCompleted, "payment is already completed")
		}
		return nil // already failed, absorb
	}

	b, err := s.BookingRepo.GetByID(intent.BookingID)
	if err != nil {
		return s.mapBookingErr(err)
	}

	captured := b.IsPrepaid || (b.EMIDetails != nil && b.EMIDetails.PaidCount > 0)
	if captured || Status(b.Status) != StatusPending {
		return nil
	}

	if err := Transition(b, StatusFailed); err != nil {
		return err
	}
	if err := s.BookingRepo.UpdateGuarded(b); err != nil {
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			return NewLifecycleError(CodeConflict, "booking was modified concurrently")
		}
		return err
	}

	s.Logger.Info("Booking failed before capture",
		zap.String("bookingId", b.ID), zap.String("paymentId", paymentID))
	return nil
}

// CreateNextPaymentIntent issues the payment intent for the next
// amount due on a booking: the next pending installment for EMI
// bookings, the outstanding balance otherwise.
func (s *DefaultPaymentService) CreateNextPaymentIntent(ctx context.Context, userID, bookingID string) (*models.PaymentIntent, string, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, "", s.mapBookingErr(err)
	}
	if b.UserID != userID {
		return nil, "", NewLifecycleError(CodeUnauthorized, "booking belongs to a different user")
	}
	if IsTerminal(Status(b.Status)) && Status(b.Status) != StatusConfirmed {
		return nil, "", NewLifecycleError(CodeConflict, "booking attempt has failed; start a new booking")
	}

	intent := &models.PaymentIntent{
		PaymentID: uuid.New().String(),
		UserID:    userID,
		BookingID: b.ID,
		Status:    models.PaymentStatusPending,
	}

	if b.EMIDetails != nil {
		var next *models.Installment
		for i := range b.EMIDetails.Schedule {
			if b.EMIDetails.Schedule[i].Status == models.InstallmentStatusPending {
				next = &b.EMIDetails.Schedule[i]
				break
			}
		}
		if next == nil {
			return nil, "", NewLifecycleError(CodeConflict, "EMI schedule is fully paid")
		}
		intent.Amount = next.Amount
		intent.IsEmiPayment = true
		intent.InstallmentNumber = next.InstallmentNumber
	} else {
		if b.BalanceAmount <= 0 {
			return nil, "", NewLifecycleError(CodeConflict, "booking has no outstanding balance")
		}
		intent.Amount = b.BalanceAmount
	}

	if err := s.PaymentRepo.Create(intent); err != nil {
		return nil, "", err
	}
	link, err := s.Gateway.CreatePaymentLink(ctx, intent)
	if err != nil {
		s.Logger.Error("Failed to create gateway payment link",
			zap.String("bookingId", b.ID), zap.Error(err))
		link = ""
	}
	return intent, link, nil
}

func (s *DefaultPaymentService) loadAuthorizedIntent(userID, paymentID string) (*models.PaymentIntent, error) {
	intent, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, s.mapPaymentErr(err)
	}
	if intent.UserID != userID {
		return nil, NewLifecycleError(CodeUnauthorized, "payment belongs to a different user")
	}
	return intent, nil
}

func (s *DefaultPaymentService) mapPaymentErr(err error) error {
	if errors.Is(err, paymentRepo.ErrNotFound) {
		return NewLifecycleError(CodePaymentNotFound, "payment not found")
	}
	return err
}

func (s *DefaultPaymentService) mapBookingErr(err error) error {
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return NewLifecycleError(CodeNotFound, "booking not found")
	}
	return err
}
