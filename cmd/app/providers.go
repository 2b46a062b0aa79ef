package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/wellbeing/internal/domain/intervention"
	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
	"github.com/yanqian/wellbeing/internal/infra/config"
	"github.com/yanqian/wellbeing/internal/infra/interventionrepo"
	"github.com/yanqian/wellbeing/internal/infra/queue"
	"github.com/yanqian/wellbeing/internal/infra/reportcache"
	"github.com/yanqian/wellbeing/internal/infra/wellbeingrepo"
	"github.com/yanqian/wellbeing/pkg/logger"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(logger.Options{
		Service: cfg.Log.Service,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})
}

func provideWellbeingConfig(cfg *config.Config) wellbeing.Config {
	return wellbeing.Config{
		DefaultDays: cfg.Report.DefaultDays,
		MaxDays:     cfg.Report.MaxDays,
		CacheTTL:    cfg.Report.CacheTTL,
	}
}

// providePostgresPool returns nil when Postgres is not configured or unreachable; repositories
// then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

// wellbeingStore is satisfied by repositories that keep signals and scores side by side.
type wellbeingStore interface {
	wellbeing.SignalRepository
	wellbeing.ScoreRepository
}

func provideWellbeingStore(pool *pgxpool.Pool) wellbeingStore {
	if pool == nil {
		return wellbeingrepo.NewMemoryRepository()
	}
	return wellbeingrepo.NewPostgresRepository(pool)
}

func provideSignalRepository(store wellbeingStore) wellbeing.SignalRepository {
	return store
}

func provideScoreRepository(store wellbeingStore) wellbeing.ScoreRepository {
	return store
}

func provideInterventionRepository(pool *pgxpool.Pool) intervention.Repository {
	if pool == nil {
		return interventionrepo.NewMemoryRepository()
	}
	return interventionrepo.NewPostgresRepository(pool)
}

func provideInterventionGenerator(svc intervention.Service) wellbeing.InterventionGenerator {
	return svc
}

// provideValkeyClient returns nil when Valkey is disabled or unreachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) valkey.Client {
	if !cfg.Valkey.Enabled {
		return nil
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory", "error", err)
		return nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory", "error", err)
		client.Close()
		return nil
	}
	logger.Info("valkey enabled", "addr", cfg.Valkey.Addr)
	return client
}

func provideReportCache(cfg *config.Config, client valkey.Client) wellbeing.ReportCache {
	if client == nil {
		return reportcache.NewMemoryCache()
	}
	return reportcache.NewValkeyCache(client, cfg.Valkey.Prefix)
}

func provideHandlerQueue(cfg *config.Config, client valkey.Client, logger *slog.Logger) queue.HandlerQueue {
	if cfg.Queue.Driver == config.QueueDriverValkey {
		if client != nil {
			return queue.NewValkeyQueue(client, cfg.Queue.Key, logger)
		}
		logger.Warn("valkey queue requested but valkey is unavailable, using immediate queue")
	}
	return queue.NewImmediateQueue(nil)
}

func provideJobQueue(q queue.HandlerQueue) wellbeing.JobQueue {
	return q
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
