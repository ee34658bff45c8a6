package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightdesk/airline/internal/api"
	"flightdesk/airline/internal/common"
	"flightdesk/airline/internal/config"
	"flightdesk/airline/internal/db"
	"flightdesk/airline/internal/logging"
	"flightdesk/airline/internal/metrics"
	"flightdesk/airline/internal/providers"
	"flightdesk/airline/internal/routes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Airline API starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	gdb, err := db.InitORM(cfg)
	if err != nil {
		logging.Fatal("Failed to open database (GORM)", "error", err.Error())
	}
	if err := db.Migrate(gdb); err != nil {
		logging.Fatal("Failed to migrate schema", "error", err.Error())
	}

	reader, err := db.InitReader(cfg, gdb)
	if err != nil {
		logging.Fatal("Failed to open database (sqlx)", "error", err.Error())
	}
	logging.Info("Database ready", "driver", cfg.DBDriver)

	cache := newCache(cfg)
	defer cache.Close()

	notifier := newNotifier(cfg)
	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	deps := api.InitDependencies(gdb, reader, cache, cfg.CacheTTL, notifier, metricsReg)
	upSince := time.Now()
	router := routes.RegisterRoutes(cfg, deps, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server starting", "port", cfg.APIPort, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server stopped with error", "error", err.Error())
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if cfg.DBDriver == config.DriverPostgres {
		_ = reader.Close()
	}
}

// newCache uses Redis when REDIS_HOST is set and the in-process cache otherwise.
func newCache(cfg *config.Config) common.CacheInterface {
	if addr := cfg.RedisAddr(); addr != "" {
		client := common.NewRedisClient(addr, cfg.RedisPassword)
		logging.Info("Using Redis cache", "addr", addr)
		return common.NewRedisCacheService(client, "airline:")
	}
	logging.Info("Using in-memory cache")
	return common.NewCacheService(cfg.CacheTTL, 10*time.Minute)
}

// newNotifier sends through SendGrid when an API key is configured.
func newNotifier(cfg *config.Config) providers.Notifier {
	if cfg.SendGridAPIKey == "" {
		logging.Warn("SENDGRID_API_KEY not set, confirmations will only be logged")
		return providers.NewLogNotifier()
	}
	notifier := providers.NewSendGridNotifier(cfg.SendGridBaseURL, cfg.SendGridAPIKey, cfg.SendGridFromEmail)
	notifier.Debug = cfg.DebugHTTP()
	return notifier
}
