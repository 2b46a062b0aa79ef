package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/wellbeing/internal/domain/intervention"
	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
	"github.com/yanqian/wellbeing/internal/infra/config"
	"github.com/yanqian/wellbeing/internal/infra/interventionrepo"
	"github.com/yanqian/wellbeing/internal/infra/queue"
	"github.com/yanqian/wellbeing/internal/infra/reportcache"
	"github.com/yanqian/wellbeing/internal/infra/wellbeingrepo"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvidersFallBackToMemory(t *testing.T) {
	cfg := &config.Config{
		Valkey: config.ValkeyConfig{Enabled: false},
		Queue:  config.QueueConfig{Driver: config.QueueDriverValkey},
	}
	logger := newTestLogger()

	pool := providePostgresPool(cfg, logger)
	require.Nil(t, pool)
	require.IsType(t, &wellbeingrepo.MemoryRepository{}, provideWellbeingStore(pool))
	require.IsType(t, &interventionrepo.MemoryRepository{}, provideInterventionRepository(pool))

	client := provideValkeyClient(cfg, logger)
	require.Nil(t, client)
	require.IsType(t, &reportcache.MemoryCache{}, provideReportCache(cfg, client))
	require.IsType(t, &queue.ImmediateQueue{}, provideHandlerQueue(cfg, client, logger))
}

func TestMemoryStackEndToEnd(t *testing.T) {
	cfg := &config.Config{Report: config.ReportConfig{DefaultDays: 7, MaxDays: 90, CacheTTL: time.Minute}}
	logger := newTestLogger()

	store := provideWellbeingStore(nil)
	interventionSvc := intervention.NewService(provideInterventionRepository(nil), logger)
	jobs := queue.NewImmediateQueue(nil)
	svc := wellbeing.NewService(
		provideWellbeingConfig(cfg),
		provideSignalRepository(store),
		provideScoreRepository(store),
		provideReportCache(cfg, nil),
		provideJobQueue(jobs),
		provideInterventionGenerator(interventionSvc),
		logger,
	)

	done := make(chan struct{}, 4)
	jobs.SetHandler(func(ctx context.Context, name string, payload map[string]any) {
		svc.HandleJob(ctx, name, payload)
		done <- struct{}{}
	})

	ctx := context.Background()
	userID := uuid.New()
	mood, stress, sleep := 2, 9, 4.0
	_, err := svc.RecordSignal(ctx, userID, wellbeing.SignalRequest{Mood: &mood, StressLevel: &stress, SleepHours: &sleep})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("recalculation job did not run")
	}

	report, err := svc.WeeklyReport(ctx, userID, 0)
	require.NoError(t, err)
	require.True(t, report.Available)
	require.Equal(t, wellbeing.WeeklyRiskHigh, report.RiskLevel.Level)
	require.Len(t, report.DailyScores, 1)

	pending := intervention.StatusPending
	items, err := interventionSvc.List(ctx, userID, intervention.Filter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, items, 2)

	updated, err := interventionSvc.UpdateStatus(ctx, userID, items[0].ID, intervention.StatusDismissed)
	require.NoError(t, err)
	require.NotNil(t, updated.DismissedAt)
}
