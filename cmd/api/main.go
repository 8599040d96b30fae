package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agendahub/agenda-api/internal/config"
	dbpkg "github.com/agendahub/agenda-api/internal/db"
	"github.com/agendahub/agenda-api/internal/logger"
	"github.com/agendahub/agenda-api/internal/middleware"
	"github.com/agendahub/agenda-api/internal/notification"
	"github.com/agendahub/agenda-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New()
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	var transport notification.Transport
	if cfg.SMTPHost != "" {
		transport = notification.NewSMTPTransport(cfg)
	} else {
		log.Warn("SMTP_HOST not set, notifications go to the log only")
		transport = notification.NewLogTransport(log)
	}

	notifier := notification.NewDispatcher(transport, log, cfg.NotifyTimeout)
	defer notifier.Close()

	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, notifier)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
