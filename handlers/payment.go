package handlers

import (
	"net/http"

	"wanderly/middleware"
	"wanderly/models"
	"wanderly/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the gateway-callback endpoints.
type PaymentHandler struct {
	Service booking.PaymentService
	Logger  *zap.Logger
}

func NewPaymentHandler(svc booking.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: svc, Logger: logger}
}

// ProcessPayment reconciles one successful gateway callback against
// its intent and advances the booking. Redelivered callbacks for an
// already-settled payment get the stored result back unchanged.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req models.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Service.ProcessPayment(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Logger.Info("Payment reconciled",
		zap.String("paymentId", req.PaymentID),
		zap.String("transactionId", result.TransactionID),
		zap.Bool("emi", result.IsEmiPayment))
	c.JSON(http.StatusOK, result)
}

// FailPayment records a gateway failure for a pending intent.
func (h *PaymentHandler) FailPayment(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	if err := h.Service.FailPayment(c.Request.Context(), userID, c.Param("paymentID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "failed"})
}

// CreateNextPaymentIntent opens the next installment (or the remaining
// balance) for payment and returns the gateway link.
func (h *PaymentHandler) CreateNextPaymentIntent(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	intent, link, err := h.Service.CreateNextPaymentIntent(c.Request.Context(), userID, c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment":     intent,
		"paymentLink": link,
	})
}
