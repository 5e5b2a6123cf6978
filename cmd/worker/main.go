package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	app "github.com/agrihedge/hedging-worker/internal/app/worker"
	"github.com/agrihedge/hedging-worker/internal/infrastructure/postgresql/trade"
	bookstore "github.com/agrihedge/hedging-worker/internal/usecase/book"
	"github.com/agrihedge/hedging-worker/internal/usecase/forecast"
	jobreader "github.com/agrihedge/hedging-worker/internal/usecase/job-reader"
	"github.com/agrihedge/hedging-worker/internal/usecase/lock"
	"github.com/agrihedge/hedging-worker/internal/usecase/matching"
	tradepublisher "github.com/agrihedge/hedging-worker/internal/usecase/trade-publisher"
	"github.com/agrihedge/hedging-worker/pkg/config"
	"github.com/agrihedge/hedging-worker/pkg/httplib/healthcheck"
	"github.com/agrihedge/hedging-worker/pkg/logger"
	"github.com/agrihedge/hedging-worker/pkg/postgresql"
	"github.com/agrihedge/hedging-worker/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg = &config.Config{}
	err = config.Load(cfg)
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	redisConfig := redis.DefaultConfig()
	redisConfig.Addrs = strings.Split(cfg.RedisConfig.Addrs, ",")
	redisConfig.Password = cfg.RedisConfig.Password
	redisConfig.Username = cfg.RedisConfig.Username
	redisConfig.DB = cfg.RedisConfig.DB

	rclient := redis.NewClient(log, redisConfig)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "connect_redis",
		})
		return
	}

	pgClient, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "connect_postgresql",
		})
		return
	}

	holder, err := os.Hostname()
	if err != nil {
		holder = "hedging-worker"
	}

	// Initialize components
	jReader := jobreader.NewReader(cfg.KafkaConfig, log)
	tradePublisher := tradepublisher.NewPublisher(cfg.TradePublisherConfig, log)
	tradeRepo := trade.NewRepository(pgClient, log)
	bookStore := bookstore.NewStore(rclient, log)
	forecastStore := forecast.NewStore(rclient, forecast.DefaultTTL, log)
	laneLock := lock.NewLock(rclient, holder, lock.DefaultLease, log)

	worker := app.NewWorker(
		jReader,
		matching.NewMatcher(),
		forecast.NewForecaster(),
		forecastStore,
		bookStore,
		tradeRepo,
		tradePublisher,
		laneLock,
		log,
		cfg,
	)

	// Health endpoint
	healthServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: healthcheck.HealthCheck{}.Handler(http.NotFoundHandler()),
	}
	go func() {
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "health_listener",
			})
		}
	}()

	if err := worker.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_worker",
		})
		return
	}

	log.Info("Hedging worker started successfully", logger.Field{
		Key:   "commodity",
		Value: cfg.Commodity,
	})

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := worker.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_worker",
		})
	}

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_health_listener",
		})
	}

	if err := tradePublisher.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_trade_publisher",
		})
	}

	if err := rclient.Disconnect(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "disconnect_redis",
		})
	}

	pgClient.Close()

	log.Info("Hedging worker shutdown complete")
}
