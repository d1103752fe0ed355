package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/betledger/internal/shared/cache"
	"github.com/radieske/betledger/internal/shared/config"
	"github.com/radieske/betledger/internal/shared/db"
	"github.com/radieske/betledger/internal/shared/kafka"
	"github.com/radieske/betledger/internal/shared/logger"
	"github.com/radieske/betledger/internal/shared/metrics"
	httpapi "github.com/radieske/betledger/internal/tracker/http"
	"github.com/radieske/betledger/internal/tracker/notify"
	"github.com/radieske/betledger/internal/tracker/service"
	"github.com/radieske/betledger/internal/tracker/store"
)

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "tracker-service"
	}
	config.UsePlainDecimals()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()
	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env), zap.String("store", cfg.StoreBackend))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		pg  *sql.DB
		rdb *redis.Client
	)

	// Backend de armazenamento
	var backend store.Backend
	switch cfg.StoreBackend {
	case "postgres":
		pg, err = db.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		p := store.NewPostgres(pg)
		if err := p.EnsureSchema(ctx); err != nil {
			log.Fatal("failed to ensure schema", zap.Error(err))
		}
		backend = p
		log.Info("postgres connected")
	case "redis":
		rdb, err = cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		backend = store.NewRedis(rdb, cfg.RedisKeyPrefix)
		log.Info("redis connected")
	case "memory", "":
		backend = store.NewMemory()
		log.Warn("using in-memory store, state is lost on restart")
	default:
		log.Fatal("unknown STORE_BACKEND", zap.String("backend", cfg.StoreBackend))
	}

	// Notificações (opcionais)
	var notifiers notify.Fanout
	if cfg.KafkaBrokers != "" {
		if cfg.Env == "local" || cfg.Env == "dev" {
			kctx, kcancel := context.WithTimeout(ctx, 10*time.Second)
			if err := kafka.EnsureTopic(kctx, cfg.KafkaBrokers, cfg.TopicLedgerChanged, log); err != nil {
				log.Warn("failed to ensure kafka topic", zap.String("topic", cfg.TopicLedgerChanged), zap.Error(err))
			}
			kcancel()
		}
		pub := notify.NewKafkaPublisher(kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLedgerChanged), log)
		defer pub.Close()
		notifiers = append(notifiers, pub)
		log.Info("kafka publisher ready", zap.String("topic", cfg.TopicLedgerChanged))
	}
	if cfg.RedisPubSubChannel != "" && cfg.RedisAddr != "" {
		if rdb == nil {
			if c, err := cache.ConnectRedis(ctx, cfg.RedisAddr); err != nil {
				log.Warn("redis unavailable, stats broadcast disabled", zap.Error(err))
			} else {
				rdb = c
			}
		}
		if rdb != nil {
			notifiers = append(notifiers, notify.NewRedisBroadcaster(rdb, cfg.RedisPubSubChannel))
			log.Info("stats broadcast ready", zap.String("channel", cfg.RedisPubSubChannel))
		}
	}
	if rdb != nil {
		defer rdb.Close()
	}

	opts := []service.Option{
		service.WithMetrics(service.NewMetrics(prometheus.DefaultRegisterer)),
		service.WithTimeout(cfg.StoreTimeout),
	}
	if len(notifiers) > 0 {
		opts = append(opts, service.WithNotifier(notifiers))
	}
	tracker := service.New(store.New(backend, log), log, opts...)
	tracker.Restore(ctx)

	// métricas e health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if pg != nil {
			if err := pg.PingContext(ctx); err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	})
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))

	// HTTP público
	api := httpapi.NewServer(log, tracker)
	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}
	go func() {
		log.Info("api listening", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api srv", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)
	log.Info("tracker-service stopped")
}
