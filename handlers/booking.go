package handlers

import (
	"net/http"

	"wanderly/middleware"
	"wanderly/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the draft and checkout endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateDraft starts a new booking draft from the catalog's pricing.
func (h *BookingHandler) CreateDraft(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req booking.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	draft, err := h.Service.CreateDraft(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// GetDraft returns the current draft with its price breakdown.
func (h *BookingHandler) GetDraft(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	draft, err := h.Service.GetDraft(c.Request.Context(), userID, c.Param("draftID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// ApplySelection swaps a room/meal-plan/activity/vehicle choice on the
// draft and returns the refreshed breakdown.
func (h *BookingHandler) ApplySelection(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var swap booking.SelectionSwap
	if err := c.ShouldBindJSON(&swap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	draft, err := h.Service.ApplySelection(c.Request.Context(), userID, c.Param("draftID"), swap)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// ApplyDiscounts previews coupon/coin adjustments on the draft.
func (h *BookingHandler) ApplyDiscounts(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req booking.ApplyDiscountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	draft, err := h.Service.ApplyDiscounts(c.Request.Context(), userID, c.Param("draftID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// Checkout converts the draft into a pending booking.
func (h *BookingHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req booking.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Logger.Info("Checkout completed",
		zap.String("bookingId", resp.BookingID),
		zap.String("userId", userID))
	c.JSON(http.StatusOK, resp)
}

// GetBooking returns one owned booking.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	b, err := h.Service.GetBooking(userID, c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListBookings returns all of the user's bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	bookings, err := h.Service.ListBookings(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
