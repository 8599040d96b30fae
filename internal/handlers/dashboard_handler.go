package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/cache"
	domain "github.com/agendahub/agenda-api/internal/domain/booking"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/middleware"
	"github.com/agendahub/agenda-api/internal/models"
)

const statsTTL = 30 * time.Second

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	log   *zap.Logger
}

func NewDashboardHandler(db *gorm.DB, c *cache.Cache, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{db: db, cache: c, log: log}
}

type DashboardStats struct {
	BookingsToday int64 `json:"bookings_today"`
	BookingsMonth int64 `json:"bookings_month"`
	TotalClients  int64 `json:"total_clients"`
	TotalServices int64 `json:"total_services"`

	BookingsPending   int64 `json:"bookings_pending"`
	BookingsConfirmed int64 `json:"bookings_confirmed"`
	BookingsDone      int64 `json:"bookings_done"`
	BookingsCanceled  int64 `json:"bookings_canceled"`
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	ctx := c.Request.Context()

	key := fmt.Sprintf("dashboard:stats:%d", accountID)
	if raw, ok := h.cache.Get(ctx, key); ok {
		var stats DashboardStats
		if err := json.Unmarshal(raw, &stats); err == nil {
			c.JSON(200, stats)
			return
		}
	}

	now := time.Now()
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	var stats DashboardStats

	bookings := func() *gorm.DB {
		return h.db.Model(&models.Booking{}).Where("account_id = ?", accountID)
	}

	queries := []error{
		bookings().Where("date = ?", today).Count(&stats.BookingsToday).Error,
		bookings().Where("date LIKE ?", month+"%").Count(&stats.BookingsMonth).Error,
		h.db.Model(&models.Client{}).Where("account_id = ?", accountID).Count(&stats.TotalClients).Error,
		h.db.Model(&models.Service{}).Where("account_id = ?", accountID).Count(&stats.TotalServices).Error,
		bookings().Where("status = ?", domain.StatusPending).Count(&stats.BookingsPending).Error,
		bookings().Where("status = ?", domain.StatusConfirmed).Count(&stats.BookingsConfirmed).Error,
		bookings().Where("status = ?", domain.StatusDone).Count(&stats.BookingsDone).Error,
		bookings().Where("status = ?", domain.StatusCanceled).Count(&stats.BookingsCanceled).Error,
	}

	for _, err := range queries {
		if err != nil {
			h.log.Error("dashboard stats failed", zap.Error(err))
			httperr.Internal(c, "failed_to_load_stats", httperr.GenericFailure)
			return
		}
	}

	if raw, err := json.Marshal(stats); err == nil {
		h.cache.Set(ctx, key, raw, statsTTL)
	}

	c.JSON(200, stats)
}
