package booking

import (
	"context"
	"errors"

	couponRepo "wanderly/database/repository/coupon"
	"wanderly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateDraftRequest starts a draft from the catalog's current base
// pricing for a package. The catalog service supplies the base price
// and the priced initial selections; the engine owns everything after
// that.
type CreateDraftRequest struct {
	PackageID   string                  `json:"packageId" binding:"required"`
	TotalAdults int                     `json:"totalAdults" binding:"required"`
	ExtraAdults int                     `json:"extraAdults"`
	Children    int                     `json:"children"`
	BasePrice   int64                   `json:"basePrice" binding:"required"`
	PaymentType string                  `json:"paymentType"`
	Selections  models.PackageSelection `json:"selections"`
}

// ApplyDiscountsRequest previews coupon and coin adjustments on a
// draft. The authoritative validation happens again at checkout.
type ApplyDiscountsRequest struct {
	CouponCode  *string `json:"couponCode"`
	RedeemCoins *int64  `json:"redeemCoins"`
}

// CreateDraft builds a new draft and caches it.
func (s *DefaultBookingService) CreateDraft(ctx context.Context, userID string, req CreateDraftRequest) (*models.BookingDraft, error) {
	if req.BasePrice <= 0 {
		return nil, NewLifecycleError(CodeValidation, "base price must be positive")
	}
	if ChargeableAdults(req.TotalAdults, req.ExtraAdults) == 0 {
		return nil, NewLifecycleError(CodeValidation, "at least one chargeable adult is required")
	}
	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeFull
	}
	if paymentType != models.PaymentTypeFull && paymentType != models.PaymentTypeAdvance {
		return nil, NewLifecycleError(CodeValidation, "paymentType must be \"advance\" or \"full\"")
	}

	draft := &models.BookingDraft{
		DraftID:           uuid.New().String(),
		UserID:            userID,
		PackageID:         req.PackageID,
		TotalAdults:       req.TotalAdults,
		ExtraAdults:       req.ExtraAdults,
		Children:          req.Children,
		Selections:        req.Selections,
		TotalPackagePrice: req.BasePrice,
		PaymentType:       paymentType,
		CreatedAt:         s.now(),
	}

	if err := s.recompose(ctx, draft); err != nil {
		return nil, err
	}
	if err := s.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetDraft fetches an owned draft.
func (s *DefaultBookingService) GetDraft(ctx context.Context, userID, draftID string) (*models.BookingDraft, error) {
	return s.loadOwnedDraft(ctx, userID, draftID)
}

// ApplySelection swaps one component of the draft's configuration.
// Swapping a component for itself is a no-op: the cached draft is
// returned unchanged and no recompute cycle runs.
func (s *DefaultBookingService) ApplySelection(ctx context.Context, userID, draftID string, swap SelectionSwap) (*models.BookingDraft, error) {
	draft, err := s.loadOwnedDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	delta, applied, err := ApplySwap(&draft.Selections, swap)
	if err != nil {
		return nil, err
	}
	if !applied {
		return draft, nil
	}

	draft.TotalPackagePrice += delta
	if draft.TotalPackagePrice < 0 {
		draft.TotalPackagePrice = 0
	}
	if err := s.recompose(ctx, draft); err != nil {
		return nil, err
	}
	if err := s.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	s.Logger.Debug("Selection swap applied",
		zap.String("draftId", draft.DraftID),
		zap.String("kind", swap.Kind),
		zap.Int64("delta", delta))
	return draft, nil
}

// ApplyDiscounts sets the coupon code and/or coin redemption on the
// draft and refreshes the breakdown.
func (s *DefaultBookingService) ApplyDiscounts(ctx context.Context, userID, draftID string, req ApplyDiscountsRequest) (*models.BookingDraft, error) {
	draft, err := s.loadOwnedDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	if req.CouponCode != nil {
		draft.CouponCode = *req.CouponCode
	}
	if req.RedeemCoins != nil {
		draft.RedeemCoins = *req.RedeemCoins
	}

	if err := s.recompose(ctx, draft); err != nil {
		return nil, err
	}
	if err := s.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DefaultBookingService) loadOwnedDraft(ctx context.Context, userID, draftID string) (*models.BookingDraft, error) {
	draft, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		return nil, NewLifecycleError(CodeUnauthorized, "draft belongs to a different user")
	}
	return draft, nil
}

// recompose refreshes the draft's price breakdown from its running
// total and applied adjustments.
func (s *DefaultBookingService) recompose(ctx context.Context, draft *models.BookingDraft) error {
	var coupon *models.Coupon
	if draft.CouponCode != "" {
		c, err := s.CouponRepo.GetByCode(draft.CouponCode)
		if err != nil {
			if errors.Is(err, couponRepo.ErrNotFound) {
				return NewLifecycleError(CodeInvalidCoupon, "coupon "+draft.CouponCode+" not found")
			}
			return err
		}
		coupon = c
	}

	var available int64
	if draft.RedeemCoins > 0 {
		user, err := s.UserRepo.GetByID(draft.UserID)
		if err != nil {
			return err
		}
		available = user.RedeemCoins
	}

	bd, err := ComposePrice(ComposeInput{
		BasePrice:         draft.TotalPackagePrice,
		GSTPercent:        s.GSTPercent,
		Coupon:            coupon,
		RedeemCoins:       draft.RedeemCoins,
		AvailableCoins:    available,
		PaymentType:       draft.PaymentType,
		ReservationAmount: s.ReservationAmount,
		Now:               s.now(),
	})
	if err != nil {
		return err
	}
	draft.Breakdown = bd
	return nil
}
