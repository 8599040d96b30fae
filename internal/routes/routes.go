package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/audit"
	"github.com/agendahub/agenda-api/internal/cache"
	"github.com/agendahub/agenda-api/internal/config"
	"github.com/agendahub/agenda-api/internal/handlers"
	"github.com/agendahub/agenda-api/internal/imagestore"
	infraRepo "github.com/agendahub/agenda-api/internal/infra/repository"
	"github.com/agendahub/agenda-api/internal/middleware"
	"github.com/agendahub/agenda-api/internal/notification"
	ucBooking "github.com/agendahub/agenda-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	notifier *notification.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	statsCache := cache.New(cfg.RedisAddr)

	var images imagestore.Store
	if cfg.S3Bucket != "" {
		images = imagestore.NewS3Store(cfg)
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		notifier,
		auditDispatcher,
	)

	setBookingStatusUC := ucBooking.NewSetBookingStatus(
		bookingRepo,
		notifier,
		auditDispatcher,
	)

	deleteBookingUC := ucBooking.NewDeleteBooking(
		bookingRepo,
		auditDispatcher,
	)

	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, log)
	meHandler := handlers.NewMeHandler(db)

	clientHandler := handlers.NewClientHandler(db, log)
	serviceHandler := handlers.NewServiceHandler(db, images, log)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		setBookingStatusUC,
		deleteBookingUC,
		listBookingsUC,
		log,
	)

	dashboardHandler := handlers.NewDashboardHandler(db, statsCache, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", bookingHandler.Create)
			secured.PUT("/bookings/:id", bookingHandler.UpdateStatus)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			secured.GET("/dashboard/stats", dashboardHandler.Stats)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
