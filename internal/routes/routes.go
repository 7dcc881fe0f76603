package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/chairtime/chairtime-api/internal/audit"
	"github.com/chairtime/chairtime-api/internal/config"
	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/handlers"
	infraRepo "github.com/chairtime/chairtime-api/internal/infra/repository"
	"github.com/chairtime/chairtime-api/internal/lock"
	"github.com/chairtime/chairtime-api/internal/middleware"
	"github.com/chairtime/chairtime-api/internal/models"
	"github.com/chairtime/chairtime-api/internal/payment"
	ucBooking "github.com/chairtime/chairtime-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	redisClient *redis.Client,
	gateway payment.Gateway,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	locker := lock.NewLocker(redisClient)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	refundPolicy := domain.RefundPolicy{
		FullHours:      cfg.RefundFullHours,
		PartialHours:   cfg.RefundPartialHours,
		PartialPercent: cfg.RefundPartialPercent,
	}

	// ======================================================
	// USE CASES — BOOKING ENGINE
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, cfg.SlotGranularityMin)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		gateway,
		locker,
		auditDispatcher,
		cfg.SlotGranularityMin,
	)

	verifyPaymentUC := ucBooking.NewVerifyPayment(
		bookingRepo,
		gateway,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		gateway,
		refundPolicy,
		auditDispatcher,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		bookingRepo,
		auditDispatcher,
	)

	listShopBookingsUC := ucBooking.NewListShopBookings(bookingRepo)
	listCustomerBookingsUC := ucBooking.NewListCustomerBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db)
	closingDaysHandler := handlers.NewClosingDaysHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		verifyPaymentUC,
		cancelBookingUC,
		listCustomerBookingsUC,
	)

	shopBookingHandler := handlers.NewShopBookingHandler(
		listShopBookingsUC,
		completeBookingUC,
		cancelBookingUC,
	)

	feedbackHandler := handlers.NewFeedbackHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/available-slots", publicHandler.AvailableSlots)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.RegisterOwner)
		api.POST("/auth/register-customer", authHandler.RegisterCustomer)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			customer := secured.Group("/")
			customer.Use(middleware.RequireRole(models.RoleCustomer))
			{
				customer.POST("/bookings", bookingHandler.Create)
				customer.POST("/bookings/:id/verify-payment", bookingHandler.VerifyPayment)
				customer.POST("/bookings/:id/cancel", bookingHandler.Cancel)
				customer.GET("/me/bookings", bookingHandler.ListMine)

				customer.POST("/bookings/:id/feedback", feedbackHandler.Create)
				customer.GET("/bookings/:id/feedback", feedbackHandler.GetForBooking)
			}

			// ------------------------------
			// OWNER
			// ------------------------------
			owner := secured.Group("/shop")
			owner.Use(middleware.RequireRole(models.RoleOwner))
			{
				owner.GET("/barbershop", barbershopHandler.GetMeBarbershop)
				owner.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)

				owner.GET("/services", serviceHandler.List)
				owner.POST("/services", serviceHandler.Create)
				owner.PATCH("/services/:id", serviceHandler.Update)

				owner.GET("/business-hours", businessHoursHandler.Get)
				owner.PUT("/business-hours", businessHoursHandler.Update)

				owner.GET("/closing-days", closingDaysHandler.List)
				owner.POST("/closing-days", closingDaysHandler.Create)
				owner.DELETE("/closing-days/:id", closingDaysHandler.Delete)

				owner.GET("/bookings", shopBookingHandler.ListByDate)
				owner.PATCH("/bookings/:id/status", shopBookingHandler.UpdateStatus)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
