package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/onboarding-backend/internal/api"
	"github.com/baharkarakas/onboarding-backend/internal/audit"
	"github.com/baharkarakas/onboarding-backend/internal/auth"
	"github.com/baharkarakas/onboarding-backend/internal/config"
	"github.com/baharkarakas/onboarding-backend/internal/db"
	"github.com/baharkarakas/onboarding-backend/internal/logger"
	"github.com/baharkarakas/onboarding-backend/internal/metrics"
	"github.com/baharkarakas/onboarding-backend/internal/policy"
	"github.com/baharkarakas/onboarding-backend/internal/repository"
	"github.com/baharkarakas/onboarding-backend/internal/repository/memory"
	"github.com/baharkarakas/onboarding-backend/internal/repository/postgres"
	"github.com/baharkarakas/onboarding-backend/internal/services"
	"github.com/baharkarakas/onboarding-backend/internal/worker"
)

type stores struct {
	users        repository.Users
	requirements repository.Requirements
	auditLogs    repository.AuditLogs
	close        func()
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	rev, closeRev, err := openRevocations(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRev()

	var pubs []audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			return err
		}
		defer kp.Close()
		pubs = append(pubs, kp)
		log.Info("audit mirror enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAuditTopic)
	}

	metrics.Init()
	wp := worker.NewPool(cfg.AuditWorkers, 0)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	userSvc := services.NewUserService(st.users, tm, rev, log)
	reqSvc := services.NewRequirementService(st.requirements, st.auditLogs, policy.MustDefault(log), wp, log, pubs...)

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: api.NewRouter(api.RouterDeps{
			Cfg:            cfg,
			TM:             tm,
			Revocations:    rev,
			UserSvc:        userSvc,
			RequirementSvc: reqSvc,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (stores, error) {
	if cfg.Store == "memory" {
		log.Warn("using in-memory store; data is lost on restart")
		m := memory.New()
		return stores{users: m.Users(), requirements: m.Requirements(), auditLogs: m.AuditLogs(), close: func() {}}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return stores{}, err
	}
	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return stores{}, err
		}
	}
	repos := postgres.NewRepositories(pool)
	return stores{users: repos.Users, requirements: repos.Requirements, auditLogs: repos.AuditLogs, close: pool.Close}, nil
}

func openRevocations(ctx context.Context, cfg config.Config, log *slog.Logger) (auth.Revocations, func(), error) {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not set; token revocations are process local")
		return auth.NewMemoryRevocations(), func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return auth.NewRedisRevocations(client), func() { _ = client.Close() }, nil
}
