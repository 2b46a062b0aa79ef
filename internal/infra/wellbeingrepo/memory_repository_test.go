package wellbeingrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
)

func TestMemoryRepositoryUpsertMergesDay(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	userID := uuid.New()
	mood, stress := 6, 4
	sleep := 7.5

	_, err := repo.UpsertSignal(ctx, wellbeing.DailySignal{UserID: userID, EntryDate: "2024-06-10", Mood: &mood, SentimentScores: []float64{0.2}})
	require.NoError(t, err)
	stored, err := repo.UpsertSignal(ctx, wellbeing.DailySignal{UserID: userID, EntryDate: "2024-06-10", StressLevel: &stress, SleepHours: &sleep, SentimentScores: []float64{0.6}})
	require.NoError(t, err)

	require.Equal(t, 6, *stored.Mood)
	require.Equal(t, 4, *stored.StressLevel)
	require.Equal(t, 7.5, *stored.SleepHours)
	require.Equal(t, []float64{0.2, 0.6}, stored.SentimentScores)

	got, ok, err := repo.GetSignal(ctx, userID, "2024-06-10")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, stored, got)

	_, ok, err = repo.GetSignal(ctx, userID, "2024-06-11")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryRepositoryListRecentKeepsLatestPerDate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	userID := uuid.New()
	base := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	rows := []wellbeing.CompositeScore{
		{UserID: userID, EntryDate: "2024-06-10", CompositeScore: 40, CalculatedAt: base},
		{UserID: userID, EntryDate: "2024-06-10", CompositeScore: 55, CalculatedAt: base.Add(time.Hour)},
		{UserID: userID, EntryDate: "2024-06-11", CompositeScore: 70, CalculatedAt: base.Add(24 * time.Hour)},
		{UserID: userID, EntryDate: "2024-06-12", CompositeScore: 80, CalculatedAt: base.Add(48 * time.Hour)},
		{UserID: uuid.New(), EntryDate: "2024-06-12", CompositeScore: 10, CalculatedAt: base},
	}
	for _, row := range rows {
		stored, err := repo.AppendScore(ctx, row)
		require.NoError(t, err)
		require.NotZero(t, stored.ID)
	}

	recent, err := repo.ListRecent(ctx, userID, 7)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, []int{80, 70, 55}, []int{recent[0].CompositeScore, recent[1].CompositeScore, recent[2].CompositeScore})

	limited, err := repo.ListRecent(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, "2024-06-11", limited[1].EntryDate)
}
