package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hdc/internal/audit"
	"hdc/internal/formconfig"
	"hdc/internal/licence/handler"
	licencemetrics "hdc/internal/licence/metrics"
	"hdc/internal/licence/service"
	"hdc/internal/licence/statuscache"
	"hdc/internal/licence/store"
	"hdc/internal/platform/config"
	"hdc/internal/platform/httpserver"
	"hdc/internal/platform/logger"
	"hdc/internal/platform/postgres"
	platformredis "hdc/internal/platform/redis"
	"hdc/internal/platform/token"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry, err := formconfig.New()
	if err != nil {
		log.Error("invalid form configuration", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}

	m := licencemetrics.New()

	var licenceStore store.Store
	if db != nil {
		pg := store.NewPostgres(db, m)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("schema migration failed", "error", err)
			os.Exit(1)
		}
		licenceStore = pg
		defer db.Close()
	} else {
		log.Warn("no DATABASE_URL configured, using in-memory store")
		licenceStore = store.NewMemory()
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	cache := statuscache.New(redisClient, cfg.StatusCacheTTL)

	auditSink := buildAuditSink(cfg, log)
	auditChannel := audit.NewChannelStore(1024, auditSink)
	auditWorker := audit.NewWorker(auditSink, auditChannel.Inbox())
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()
	publisher := audit.NewPublisher(auditChannel)

	licences := service.New(licenceStore, registry, publisher, cache, m, log)

	tokens := token.NewService(cfg.JWTSigningKey, "hdc")

	router := chi.NewRouter()
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())
	handler.New(licences, log, tokens).Register(router)

	srv := httpserver.New(cfg.Addr, router, httpserver.Timeouts{
		ReadHeader: cfg.ReadHeaderTimeout,
		Write:      cfg.WriteTimeout,
	})

	log.Info("starting hdc licence service", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func buildAuditSink(cfg config.Server, log *slog.Logger) audit.Store {
	if len(cfg.KafkaBrokers) == 0 {
		log.Warn("no KAFKA_BROKERS configured, audit events stay in memory")
		return audit.NewMemoryStore()
	}
	kafka, err := audit.NewKafkaStore(cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		log.Error("kafka audit sink unavailable, falling back to memory", "error", err)
		return audit.NewMemoryStore()
	}
	return kafka
}
