package booking

import (
	"context"
	"errors"

	bookingRepo "wanderly/database/repository/booking"
	couponRepo "wanderly/database/repository/coupon"
	userRepo "wanderly/database/repository/user"
	"wanderly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutRequest converts a draft into a pending booking. The
// adjustments here are authoritative; whatever was previewed on the
// draft is revalidated.
type CheckoutRequest struct {
	DraftID     string `json:"draftId" binding:"required"`
	PaymentType string `json:"paymentType" binding:"required"`
	CouponCode  string `json:"couponCode"`
	RedeemCoin  int64  `json:"redeemCoin"`
	EmiMonths   int    `json:"emiMonths"`
}

// CheckoutResponse is the transport answer to a successful checkout.
type CheckoutResponse struct {
	BookingID   string `json:"bookingId"`
	FinalPrice  int64  `json:"finalPrice"`
	Status      string `json:"status"`
	PaymentID   string `json:"paymentId"`
	PaymentLink string `json:"paymentLink,omitempty"`
}

// Checkout snapshots the draft into a pending Booking, attaches the
// EMI schedule when requested, deducts redeemed coins and registers
// the first payment intent with the gateway. The price is locked
// here; it is never recomputed from catalog prices afterwards.
func (s *DefaultBookingService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*CheckoutResponse, error) {
	if req.PaymentType != models.PaymentTypeFull && req.PaymentType != models.PaymentTypeAdvance {
		return nil, NewLifecycleError(CodeValidation, "paymentType must be \"advance\" or \"full\"")
	}
	if req.EmiMonths < 0 {
		return nil, NewLifecycleError(CodeValidation, "emiMonths cannot be negative")
	}
	if req.EmiMonths > 0 && req.PaymentType == models.PaymentTypeAdvance {
		return nil, NewLifecycleError(CodeValidation, "advance bookings cannot carry an EMI plan")
	}

	draft, err := s.loadOwnedDraft(ctx, userID, req.DraftID)
	if err != nil {
		return nil, err
	}

	var coupon *models.Coupon
	if req.CouponCode != "" {
		c, err := s.CouponRepo.GetByCode(req.CouponCode)
		if err != nil {
			if errors.Is(err, couponRepo.ErrNotFound) {
				return nil, NewLifecycleError(CodeInvalidCoupon, "coupon "+req.CouponCode+" not found")
			}
			return nil, err
		}
		coupon = c
	}

	var available int64
	if req.RedeemCoin > 0 {
		user, err := s.UserRepo.GetByID(userID)
		if err != nil {
			return nil, err
		}
		available = user.RedeemCoins
	}

	now := s.now()
	bd, err := ComposePrice(ComposeInput{
		BasePrice:         draft.TotalPackagePrice,
		GSTPercent:        s.GSTPercent,
		Coupon:            coupon,
		RedeemCoins:       req.RedeemCoin,
		AvailableCoins:    available,
		PaymentType:       req.PaymentType,
		ReservationAmount: s.ReservationAmount,
		Now:               now,
	})
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:                uuid.New().String(),
		UserID:            userID,
		PackageID:         draft.PackageID,
		Selections:        draft.Selections,
		PaymentType:       req.PaymentType,
		TotalPackagePrice: draft.TotalPackagePrice,
		GSTPrice:          bd.GSTAmount,
		CouponDiscount:    bd.CouponDiscount,
		RedeemCoin:        bd.RedeemedCoinValue,
		FinalPrice:        bd.FinalPayable,
		BalanceAmount:     RemainingBalance(bd),
		Status:            string(StatusPending),
	}

	intent := &models.PaymentIntent{
		PaymentID: uuid.New().String(),
		UserID:    userID,
		BookingID: b.ID,
		Amount:    bd.FinalPayable,
		Status:    models.PaymentStatusPending,
	}

	if req.EmiMonths > 0 {
		schedule, err := GenerateSchedule(bd.FinalPayable, req.EmiMonths, s.ProcessingFee, now)
		if err != nil {
			return nil, err
		}
		b.EMIDetails = &models.EMIDetails{
			Months:        req.EmiMonths,
			ProcessingFee: s.ProcessingFee,
			Schedule:      schedule,
			NextDueDate:   NextDueDate(schedule),
		}
		b.BalanceAmount = bd.FinalPayable
		intent.Amount = schedule[0].Amount
		intent.IsEmiPayment = true
		intent.InstallmentNumber = 1
	}

	// The balance check lives inside the conditional deduction, so a
	// stale AvailableCoins read cannot over-redeem.
	if bd.RedeemedCoinValue > 0 {
		if err := s.UserRepo.DeductRedeemCoins(userID, bd.RedeemedCoinValue); err != nil {
			if errors.Is(err, userRepo.ErrInsufficientCoins) {
				return nil, NewLifecycleError(CodeInvalidRedemption, "redemption exceeds available coin balance")
			}
			return nil, err
		}
	}

	if err := s.BookingRepo.Create(b); err != nil {
		s.refundCoins(userID, bd.RedeemedCoinValue)
		return nil, err
	}
	if err := s.PaymentRepo.Create(intent); err != nil {
		s.refundCoins(userID, bd.RedeemedCoinValue)
		return nil, err
	}

	link, err := s.Gateway.CreatePaymentLink(ctx, intent)
	if err != nil {
		// The booking stays pending; the client can request a fresh
		// link. Payment, not link creation, drives the lifecycle.
		s.Logger.Error("Failed to create gateway payment link",
			zap.String("bookingId", b.ID), zap.Error(err))
		link = ""
	}

	if err := s.Drafts.Delete(ctx, draft.DraftID); err != nil {
		s.Logger.Warn("Failed to delete booking draft after checkout",
			zap.String("draftId", draft.DraftID), zap.Error(err))
	}

	return &CheckoutResponse{
		BookingID:   b.ID,
		FinalPrice:  b.FinalPrice,
		Status:      b.Status,
		PaymentID:   intent.PaymentID,
		PaymentLink: link,
	}, nil
}

func (s *DefaultBookingService) refundCoins(userID string, coins int64) {
	if coins <= 0 {
		return
	}
	if err := s.UserRepo.CreditRedeemCoins(userID, coins); err != nil {
		s.Logger.Error("Failed to refund redeemed coins",
			zap.String("userId", userID), zap.Int64("coins", coins), zap.Error(err))
	}
}

// GetBooking returns a booking owned by the user.
func (s *DefaultBookingService) GetBooking(userID, bookingID string) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewLifecycleError(CodeNotFound, "booking not found")
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, NewLifecycleError(CodeUnauthorized, "booking belongs to a different user")
	}
	return b, nil
}

// ListBookings returns the user's bookings, newest first.
func (s *DefaultBookingService) ListBookings(userID string) ([]models.Booking, error) {
	return s.BookingRepo.GetByUser(userID)
}
