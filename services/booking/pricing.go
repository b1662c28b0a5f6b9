package booking

import (
	"math"
	"time"

	"wanderly/models"
)

// DefaultReservationAmount is the nominal token payment for an
// advance booking when no amount is configured.
const DefaultReservationAmount int64 = 1

// ComposeInput carries everything ComposePrice needs. Prices are
// whole currency units.
type ComposeInput struct {
	BasePrice         int64
	GSTPercent        float64
	Coupon            *models.Coupon
	RedeemCoins       int64
	AvailableCoins    int64
	PaymentType       string
	ReservationAmount int64
	Now               time.Time
}

// GSTAmount computes the tax on a base price.
func GSTAmount(basePrice int64, gstPercent float64) int64 {
	return int64(math.Round(float64(basePrice) * gstPercent / 100))
}

// couponDiscount computes the discount a coupon yields on basePrice,
// clamped so it never exceeds the gross payable amount.
func couponDiscount(c *models.Coupon, basePrice, gross int64, now time.Time) (int64, error) {
	if c == nil {
		return 0, nil
	}
	if !c.Valid(now) {
		return 0, NewLifecycleError(CodeInvalidCoupon, "coupon "+c.Code+" has expired")
	}

	var discount int64
	switch c.ValueType {
	case models.CouponTypePercentage:
		discount = int64(math.Round(float64(c.Value) * float64(basePrice) / 100))
	case models.CouponTypeFlat:
		discount = c.Value
	default:
		return 0, NewLifecycleError(CodeInvalidCoupon, "coupon "+c.Code+" has unknown value type")
	}
	if discount < 0 {
		discount = 0
	}
	if discount > gross {
		discount = gross
	}
	return discount, nil
}

// ComposePrice produces the payable price breakdown from a base price
// and the applied adjustments. Pure computation, no side effects.
//
// Redemption in excess of the remaining payable amount or of the
// available coin balance is rejected, never silently truncated.
func ComposePrice(in ComposeInput) (models.PriceBreakdown, error) {
	gst := GSTAmount(in.BasePrice, in.GSTPercent)
	gross := in.BasePrice + gst

	discount, err := couponDiscount(in.Coupon, in.BasePrice, gross, in.Now)
	if err != nil {
		return models.PriceBreakdown{}, err
	}

	remaining := gross - discount
	if in.RedeemCoins < 0 {
		return models.PriceBreakdown{}, NewLifecycleError(CodeInvalidRedemption, "redeem coins cannot be negative")
	}
	if in.RedeemCoins > in.AvailableCoins {
		return models.PriceBreakdown{}, NewLifecycleError(CodeInvalidRedemption, "redemption exceeds available coin balance")
	}
	if in.RedeemCoins > remaining {
		return models.PriceBreakdown{}, NewLifecycleError(CodeInvalidRedemption, "redemption exceeds remaining payable amount")
	}

	final := remaining - in.RedeemCoins
	if final < 0 {
		final = 0
	}

	bd := models.PriceBreakdown{
		BasePrice:         in.BasePrice,
		GSTAmount:         gst,
		CouponDiscount:    discount,
		RedeemedCoinValue: in.RedeemCoins,
		FinalPayable:      final,
	}

	// Advance bookings pay only the reservation token now; the full
	// breakdown stays intact so the balance settlement can be derived
	// later without re-reading catalog prices.
	if in.PaymentType == models.PaymentTypeAdvance {
		reservation := in.ReservationAmount
		if reservation <= 0 {
			reservation = DefaultReservationAmount
		}
		if reservation > final {
			reservation = final
		}
		bd.FinalPayable = reservation
	}
	return bd, nil
}

// RemainingBalance derives the unpaid portion of a breakdown before
// any payment: the full settled price. Every settled payment,
// including an advance reservation, decrements it, so the reservation
// is never credited twice.
func RemainingBalance(bd models.PriceBreakdown) int64 {
	full := bd.BasePrice + bd.GSTAmount - bd.CouponDiscount - bd.RedeemedCoinValue
	if full < 0 {
		full = 0
	}
	return full
}
