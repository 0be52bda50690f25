// Command membersapi serves the member-storage HTTP API used by memberdesk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coopdesk/memberdesk/internal/adapters/httpapi"
	memidempotency "github.com/coopdesk/memberdesk/internal/adapters/memory/idempotency"
	memmemberrepo "github.com/coopdesk/memberdesk/internal/adapters/memory/memberrepo"
	postgres "github.com/coopdesk/memberdesk/internal/adapters/postgres"
	pgidempotency "github.com/coopdesk/memberdesk/internal/adapters/postgres/idempotency"
	pgmemberrepo "github.com/coopdesk/memberdesk/internal/adapters/postgres/memberrepo"
	redisidempotency "github.com/coopdesk/memberdesk/internal/adapters/redis/idempotency"
	"github.com/coopdesk/memberdesk/internal/app/members"
	platformclock "github.com/coopdesk/memberdesk/internal/platform/clock"
	"github.com/coopdesk/memberdesk/internal/platform/config"
	"github.com/coopdesk/memberdesk/internal/platform/logging"
	"github.com/coopdesk/memberdesk/internal/platform/metrics"
	idempotencyport "github.com/coopdesk/memberdesk/internal/ports/out/idempotency"
	memberrepoport "github.com/coopdesk/memberdesk/internal/ports/out/memberrepo"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log config: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("membersapi stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	backends, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backends.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	memberSvc := members.NewService(backends.members, platformclock.NewSystemClock())
	api := httpapi.NewServer(memberSvc, backends.idem, log.Named("httpapi"))
	handler := httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{
		Logger:  log.Named("http"),
		Metrics: metrics.NewHTTPMetrics(reg),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.Server.StorageBackend),
			zap.String("idempotency", cfg.Server.IdempotencyBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type backends struct {
	members memberrepoport.Repository
	idem    idempotencyport.Store
	closers []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backends, error) {
	b := &backends{}

	switch cfg.Server.StorageBackend {
	case config.BackendPostgres:
		p, err := postgres.NewPool(ctx, cfg.Server.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			return nil, fmt.Errorf("invalid postgres config: %w", err)
		}
		b.closers = append(b.closers, p.Close)
		if err := postgres.Migrate(ctx, p); err != nil {
			b.close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		b.members = pgmemberrepo.NewRepo(p)
		if cfg.Server.IdempotencyBackend == config.BackendPostgres {
			b.idem = pgidempotency.NewStore(p)
		}
	default:
		b.members = memmemberrepo.NewRepo()
	}

	switch cfg.Server.IdempotencyBackend {
	case config.BackendMemory:
		b.idem = memidempotency.NewStore()
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			b.close()
			return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.idem = redisidempotency.NewStore(client, cfg.Redis.TTL)
	case config.BackendNone:
		log.Warn("idempotency disabled; Idempotency-Key headers are ignored")
	}
	return b, nil
}
