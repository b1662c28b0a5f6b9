package couponRepo

import (
	"errors"

	"wanderly/models"
)

// ErrNotFound is returned when no coupon matches the given code.
var ErrNotFound = errors.New("coupon not found")

// CouponRepository defines read access to externally issued coupons.
type CouponRepository interface {
	GetByCode(code string) (*models.Coupon, error)
}
