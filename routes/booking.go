package routes

import (
	"wanderly/handlers"
	"wanderly/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware())
		bookingGroup.POST("/draft", hb.Booking.CreateDraft)                       // Phase 1: Start draft
		bookingGroup.GET("/draft/:draftID", hb.Booking.GetDraft)                  // Inspect draft + breakdown
		bookingGroup.PUT("/draft/:draftID/selection", hb.Booking.ApplySelection)  // Phase 2: Swap selections
		bookingGroup.PUT("/draft/:draftID/discounts", hb.Booking.ApplyDiscounts)  // Phase 2: Coupons and coins
		bookingGroup.POST("/checkout", hb.Booking.Checkout)                       // Phase 3: Lock price, go pending
		bookingGroup.GET("/:bookingID", hb.Booking.GetBooking)
		bookingGroup.GET("", hb.Booking.ListBookings)
		bookingGroup.POST("/:bookingID/pay", hb.Payment.CreateNextPaymentIntent) // Open next installment or balance
	}
}

// RegisterPaymentRoutes sets up the gateway-callback endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	paymentGroup := r.Group("/api/payment")
	{
		paymentGroup.Use(middleware.JWTAuthUserMiddleware())
		paymentGroup.POST("/emi/process", hb.Payment.ProcessPayment)
		paymentGroup.POST("/:paymentID/fail", hb.Payment.FailPayment)
	}
}
