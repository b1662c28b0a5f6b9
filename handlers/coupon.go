package handlers

import (
	"errors"
	"net/http"
	"time"

	couponRepo "wanderly/database/repository/coupon"

	"github.com/gin-gonic/gin"
)

// CouponHandler lets the client validate a coupon code before attaching
// it to a checkout.
type CouponHandler struct {
	Repo couponRepo.CouponRepository
}

func NewCouponHandler(repo couponRepo.CouponRepository) *CouponHandler {
	return &CouponHandler{Repo: repo}
}

func (h *CouponHandler) GetCoupon(c *gin.Context) {
	coupon, err := h.Repo.GetByCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, couponRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up coupon"})
		return
	}
	if !coupon.Valid(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coupon is expired or inactive"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupon": coupon})
}
