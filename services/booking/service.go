package booking

import (
	"time"

	bookingRepo "wanderly/database/repository/booking"
	couponRepo "wanderly/database/repository/coupon"
	paymentRepo "wanderly/database/repository/payment"
	userRepo "wanderly/database/repository/user"
	"wanderly/services/gateway"

	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Drafts      DraftStore
	BookingRepo bookingRepo.BookingRepository
	PaymentRepo paymentRepo.PaymentRepository
	CouponRepo  couponRepo.CouponRepository
	UserRepo    userRepo.UserRepository
	Gateway     gateway.PaymentGateway
	Logger      *zap.Logger

	// Pricing knobs, injected from config at assembly.
	GSTPercent        float64
	ReservationAmount int64
	ProcessingFee     int64

	// Clock is overridable in tests; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
