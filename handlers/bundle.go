package handlers

// HandlerBundle groups the HTTP handlers so route registration takes a
// single dependency.
type HandlerBundle struct {
	Booking *BookingHandler
	Payment *PaymentHandler
	Coupon  *CouponHandler
}
