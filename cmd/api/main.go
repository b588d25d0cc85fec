package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/call-assistant/internal/config"
	"github.com/kursadbilgin/call-assistant/internal/handler"
	"github.com/kursadbilgin/call-assistant/internal/infra/postgresql"
	"github.com/kursadbilgin/call-assistant/internal/infra/postgresql/migrations"
	infraredis "github.com/kursadbilgin/call-assistant/internal/infra/redis"
	"github.com/kursadbilgin/call-assistant/internal/observability"
	"github.com/kursadbilgin/call-assistant/internal/repository"
	"github.com/kursadbilgin/call-assistant/internal/schedule"
	"github.com/kursadbilgin/call-assistant/internal/service"
	"github.com/kursadbilgin/call-assistant/internal/transport"
	"github.com/kursadbilgin/call-assistant/internal/webhook"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := infraredis.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis initialization failed", zap.Error(err))
	}
	defer rdb.Close()

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		logger.Fatal("invalid display timezone", zap.String("timezone", cfg.DisplayTimezone), zap.Error(err))
	}

	metrics := observability.NewMetrics()

	reminderRepo := repository.NewGormReminderRepo(db)
	claimRepo := repository.NewGormClaimRepo(db)
	taskRepo := repository.NewGormTaskRepo(db)
	noteRepo := repository.NewGormNoteRepo(db)
	settingsRepo := repository.NewGormSettingsRepo(db)

	engine := schedule.NewEngine(nil, loc)

	var mirror *webhook.Mirror
	if cfg.NotifyMirrorURL != "" {
		mirror, err = webhook.NewMirror(cfg.NotifyMirrorURL)
		if err != nil {
			logger.Fatal("notify mirror initialization failed", zap.Error(err))
		}
	}

	pollLimiter, err := infraredis.NewRedisPollLimiter(rdb, cfg.PollRatePerSec)
	if err != nil {
		logger.Fatal("poll limiter initialization failed", zap.Error(err))
	}

	callService, err := service.NewCallService(reminderRepo, claimRepo, settingsRepo, engine, loc, metrics, logger)
	if err != nil {
		logger.Fatal("call service initialization failed", zap.Error(err))
	}
	claimService, err := service.NewClaimService(claimRepo, reminderRepo, engine, loc, logger)
	if err != nil {
		logger.Fatal("claim service initialization failed", zap.Error(err))
	}
	notificationService, err := service.NewNotificationService(reminderRepo, mirror, loc, nil, metrics, logger)
	if err != nil {
		logger.Fatal("notification service initialization failed", zap.Error(err))
	}
	plannerService, err := service.NewPlannerService(taskRepo, noteRepo, settingsRepo, logger)
	if err != nil {
		logger.Fatal("planner service initialization failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(logger),
	})

	app.Use(metrics.HTTPMiddleware())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(metrics.Handler())(c.Context())
		return nil
	})
	handler.RegisterHealthRoutes(app, sqlDB, rdb)

	app.Use(transport.RequireUser())
	if err := handler.RegisterCallRoutes(app, callService); err != nil {
		logger.Fatal("call routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterClaimRoutes(app, claimService); err != nil {
		logger.Fatal("claim routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterNotificationRoutes(app, notificationService, pollLimiter); err != nil {
		logger.Fatal("notification routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterPlannerRoutes(app, plannerService); err != nil {
		logger.Fatal("planner routes registration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("call-assistant api started", zap.Int("port", cfg.APIPort))
		return app.Listen(fmt.Sprintf(":%d", cfg.APIPort))
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		logger.Error("api stopped", zap.Error(err))
	}
}
