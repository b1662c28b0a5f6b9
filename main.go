// File: wanderly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wanderly/config"
	"wanderly/cron"
	"wanderly/database"
	bookingRepoPkg "wanderly/database/repository/booking"
	couponRepoPkg "wanderly/database/repository/coupon"
	paymentRepoPkg "wanderly/database/repository/payment"
	userRepoPkg "wanderly/database/repository/user"
	"wanderly/handlers"
	"wanderly/middleware"
	"wanderly/routes"
	"wanderly/services/booking"
	"wanderly/services/gateway"
	"wanderly/services/notification"
	"wanderly/services/tasks"
	"wanderly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	couponRepo := couponRepoPkg.NewMongoCouponRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// async reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := tasks.NewScheduler(asynqClient)

	notificationService, err := notification.NewDefaultNotificationService(userRepo, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	stripeGateway := gateway.NewStripeGateway(logger)

	// services.
	bookingService := &booking.DefaultBookingService{
		Drafts:      booking.NewRedisDraftStore(utils.GetCacheClient()),
		BookingRepo: bookingRepo,
		PaymentRepo: paymentRepo,
		CouponRepo:  couponRepo,
		UserRepo:    userRepo,
		Gateway:     stripeGateway,
		Logger:      logger,

		GSTPercent:        config.AppConfig.GSTPercent,
		ReservationAmount: config.AppConfig.ReservationAmount,
		ProcessingFee:     config.AppConfig.EMIProcessingFee,
	}

	paymentService := &booking.DefaultPaymentService{
		BookingRepo: bookingRepo,
		PaymentRepo: paymentRepo,
		UserRepo:    userRepo,
		Gateway:     stripeGateway,
		Notifier:    notificationService,
		Reminders:   reminderScheduler,
		Logger:      logger,

		CashbackPercent: config.AppConfig.CashbackPercent,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Payment: handlers.NewPaymentHandler(paymentService, logger),
		Coupon:  handlers.NewCouponHandler(couponRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the due-date reminder worker.
	cron.InitReminderWorker(notificationService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
