package handlers

import (
	"net/http"

	"wanderly/services/booking"
	"wanderly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusForCode maps the lifecycle error taxonomy onto HTTP statuses.
var statusForCode = map[string]int{
	booking.CodeValidation:        http.StatusBadRequest,
	booking.CodeNotFound:          http.StatusNotFound,
	booking.CodePaymentNotFound:   http.StatusNotFound,
	booking.CodeUnauthorized:      http.StatusUnauthorized,
	booking.CodeAlreadyCompleted:  http.StatusBadRequest,
	booking.CodeEmiOnly:           http.StatusBadRequest,
	booking.CodeNotEmiBooking:     http.StatusBadRequest,
	booking.CodeInvalidCoupon:     http.StatusBadRequest,
	booking.CodeInvalidRedemption: http.StatusBadRequest,
	booking.CodeConflict:          http.StatusConflict,
}

// respondError writes a coded error response, hiding internals behind
// a 500 for anything outside the taxonomy.
func respondError(c *gin.Context, err error) {
	if le, ok := booking.AsLifecycleError(err); ok {
		status, found := statusForCode[le.Code]
		if !found {
			status = http.StatusBadRequest
		}
		utils.JSONError(c, status, le.Code, le.Message)
		return
	}
	utils.GetLogger().Error("Unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
		Message: "Internal Server Error",
	})
}
