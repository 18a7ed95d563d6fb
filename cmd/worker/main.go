package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airplanemode/api"
	"github.com/Domenick1991/airplanemode/config"
	"github.com/Domenick1991/airplanemode/internal/bootstrap"
	"github.com/Domenick1991/airplanemode/internal/cache"
	"github.com/Domenick1991/airplanemode/internal/email"
	"github.com/Domenick1991/airplanemode/internal/jobs"
	"github.com/Domenick1991/airplanemode/internal/kafka"
	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/Domenick1991/airplanemode/internal/service/leasing"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logging.Init(cfg.App.Env); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logging.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Ticketing.FlightsCacheTTL)*time.Second,
		time.Duration(cfg.Leasing.PageCacheTTL)*time.Second)
	defer redisCache.Close()
	metricsReg := metrics.NewMetricsRegistry()

	leaseRepo := repository.NewLeaseRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	shopRepo := repository.NewShopRepository(pool)
	settingsService := leasing.NewSettingsService(repository.NewSettingsRepository(pool), nil)
	leaseService := leasing.NewLeaseService(leaseRepo, roomRepo, shopRepo, settingsService,
		leasing.WithEvents(producer, cfg.Kafka.LeaseTopic, cfg.Kafka.NotificationsTopic),
		leasing.WithPageCache(redisCache),
		leasing.WithMetrics(metricsReg),
	)

	scheduler := jobs.NewScheduler(leaseService, metricsReg)
	if err := scheduler.Register(jobs.Schedules{
		Autorenew: cfg.Worker.AutorenewSchedule,
		Reminders: cfg.Worker.ReminderSchedule,
	}); err != nil {
		logging.Fatal("register jobs", "error", err)
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()
	sender := email.NewSender()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ops := api.NewOpsRouter(metricsReg, map[string]api.HealthCheck{
		"postgres": pool.Ping,
		"kafka":    producer.CheckConnection,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bootstrap.Run(gctx, cfg.Worker.MetricsAddress, ops, time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	})
	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)
		return nil
	})
	g.Go(func() error {
		err := consumer.Consume(gctx, kafka.EventHandler(sender.Send))
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	logging.Info("worker started", "notifications_topic", cfg.Kafka.NotificationsTopic)
	if err := g.Wait(); err != nil {
		logging.Error("worker stopped", "error", err)
		return
	}
	logging.Info("worker stopped")
}
