package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderpilot/internal/config"
	"orderpilot/internal/db"
	"orderpilot/internal/events"
	"orderpilot/internal/logger"
	"orderpilot/internal/menu"
	"orderpilot/internal/metrics"
	"orderpilot/internal/middleware"
	"orderpilot/internal/order"
	"orderpilot/internal/restaurant"
	"orderpilot/internal/router"
	"orderpilot/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Error("config", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, logger.For(log, "db"))
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer pgDB.Close()

	reg := metrics.NewRegistry()

	// ───────────────────────── STORAGE ─────────────────────────
	var uploads menu.Storage
	if cfg.StorageEnabled() {
		r2Client, err := storage.NewR2Client(ctx, storage.R2Options{
			Endpoint:      cfg.R2Endpoint,
			AccessKey:     cfg.R2AccessKey,
			SecretKey:     cfg.R2SecretKey,
			Bucket:        cfg.R2Bucket,
			PublicBaseURL: cfg.R2PublicBaseURL,
		})
		if err != nil {
			log.Error("r2 init failed", "err", err)
			os.Exit(1)
		}
		uploads = r2Client
	} else {
		log.Warn("object storage not configured, menu uploads will not be archived")
	}

	// ───────────────────────── EVENTS ─────────────────────────
	var publisher order.Publisher
	if cfg.RabbitMQURL != "" {
		amqpPublisher, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Error("rabbitmq init failed", "err", err)
			os.Exit(1)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	// ───────────────────────── SERVICES ─────────────────────────
	orderService := order.NewService(
		order.NewPostgresRepository(pgDB),
		publisher,
		reg,
		logger.For(log, "order"),
	)

	extractor := menu.NewPDFToText()
	if !extractor.Available() {
		log.Warn("pdftotext not found, only .txt menus can be imported")
	}
	menuService := menu.NewService(
		menu.NewPostgresRepository(pgDB),
		uploads,
		extractor,
		reg,
		logger.For(log, "menu"),
	)

	restaurantService := restaurant.NewService(restaurant.NewPostgresRepository(pgDB))
	guard := middleware.NewRestaurantGuard(restaurantService)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.NewRouter(router.Deps{
		Orders:         order.NewHandler(orderService, guard),
		Menus:          menu.NewHandler(menuService),
		Restaurants:    restaurant.NewHandler(restaurantService),
		Guard:          guard,
		Metrics:        reg,
		Log:            logger.For(log, "http"),
		WebhookSecret:  cfg.WebhookSecret,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	go func() {
		log.Info("api listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
	log.Info("api stopped")
}
