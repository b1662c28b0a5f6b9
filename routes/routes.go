package routes

import (
	"net/http"
	"time"

	"wanderly/handlers"
	"wanderly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Wanderly"})
	})
}

// RegisterCouponRoutes registers the coupon lookup endpoint.
func RegisterCouponRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/coupon")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/:code", hb.Coupon.GetCoupon)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterCouponRoutes(r, hb)
}
