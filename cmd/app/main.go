package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airplanemode/api"
	"github.com/Domenick1991/airplanemode/config"
	"github.com/Domenick1991/airplanemode/internal/bootstrap"
	"github.com/Domenick1991/airplanemode/internal/cache"
	"github.com/Domenick1991/airplanemode/internal/kafka"
	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/Domenick1991/airplanemode/internal/migrations"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/Domenick1991/airplanemode/internal/service/fleet"
	"github.com/Domenick1991/airplanemode/internal/service/flights"
	"github.com/Domenick1991/airplanemode/internal/service/leasing"
	"github.com/Domenick1991/airplanemode/internal/service/reports"
	"github.com/Domenick1991/airplanemode/internal/service/tickets"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
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
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Migrate {
		if err := migrations.Apply(cfg.Database.MigrateURL()); err != nil {
			logging.Fatal("apply migrations", "error", err)
		}
		logging.Info("migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logging.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	flightsTTL := time.Duration(cfg.Ticketing.FlightsCacheTTL) * time.Second
	pageTTL := time.Duration(cfg.Leasing.PageCacheTTL) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, flightsTTL, pageTTL)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		logging.Warn("redis is not reachable, seat locks and page cache will fail", "error", err)
	}
	settingsTTL := time.Duration(cfg.Leasing.SettingsCacheTTL) * time.Second
	localCache := cache.NewLocalCache(settingsTTL, 2*settingsTTL)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		logging.Warn("kafka is not reachable, events will be dropped", "error", err)
	}

	metricsReg := metrics.NewMetricsRegistry()

	fleetRepo := repository.NewFleetRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	shopRepo := repository.NewShopRepository(pool)
	leaseRepo := repository.NewLeaseRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	fleetService := fleet.NewFleetService(fleetRepo)
	flightService := flights.NewFlightService(flightRepo, fleetRepo, redisCache,
		flights.WithEvents(producer, cfg.Kafka.TicketTopic),
		flights.WithMetrics(metricsReg),
	)
	ticketService := tickets.NewTicketService(
		ticketRepo,
		flightRepo,
		fleetRepo,
		redisCache,
		producer,
		cfg.Kafka.TicketTopic,
		time.Duration(cfg.Ticketing.SeatLockTTLSeconds)*time.Second,
		tickets.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		tickets.WithSeatAttempts(cfg.Ticketing.SeatAttempts),
		tickets.WithMetrics(metricsReg),
	)
	settingsService := leasing.NewSettingsService(settingsRepo, localCache)
	roomService := leasing.NewRoomService(roomRepo, leaseRepo, fleetRepo, settingsService, redisCache)
	shopService := leasing.NewShopService(shopRepo, redisCache)
	leaseService := leasing.NewLeaseService(leaseRepo, roomRepo, shopRepo, settingsService,
		leasing.WithEvents(producer, cfg.Kafka.LeaseTopic, cfg.Kafka.NotificationsTopic),
		leasing.WithPageCache(redisCache),
		leasing.WithMetrics(metricsReg),
	)
	reportService := reports.NewReportService(reportRepo, shopRepo, redisCache, metricsReg)

	opts := api.RouterOptions{
		Metrics:     metricsReg,
		RateLimiter: api.NewIPRateLimiter(cfg.HTTP.PublicRPS, cfg.HTTP.PublicBurst),
		SwaggerDir:  cfg.HTTP.SwaggerDir,
		Health: map[string]api.HealthCheck{
			"postgres": pool.Ping,
			"redis":    redisCache.Ping,
		},
	}
	if cfg.HTTP.SwaggerDir != "" {
		opts.SwaggerURL = "/swagger/airplanemode.swagger.json"
	}
	router := api.NewRouter(api.Handlers{
		Fleet:   api.NewFleetHandler(fleetService),
		Flights: api.NewFlightHandler(flightService),
		Tickets: api.NewTicketHandler(ticketService),
		Leasing: api.NewLeasingHandler(roomService, shopService, leaseService, settingsService),
		Reports: api.NewReportHandler(reportService),
	}, opts)

	shutdown := time.Duration(cfg.HTTP.ShutdownTimeout) * time.Second
	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router, shutdown); err != nil {
		logging.Fatal("server error", "error", err)
	}
}
