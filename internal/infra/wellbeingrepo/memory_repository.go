package wellbeingrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
)

type signalKey struct {
	userID uuid.UUID
	date   string
}

// MemoryRepository keeps daily signals and composite scores in process memory for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	signals map[signalKey]wellbeing.DailySignal
	scores  map[uuid.UUID][]wellbeing.CompositeScore
	seq     int64
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		signals: make(map[signalKey]wellbeing.DailySignal),
		scores:  make(map[uuid.UUID][]wellbeing.CompositeScore),
	}
}

// UpsertSignal merges the check-in into the stored day. Absent fields keep their previous value
// and sentiment scores accumulate.
func (r *MemoryRepository) UpsertSignal(_ context.Context, signal wellbeing.DailySignal) (wellbeing.DailySignal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := signalKey{userID: signal.UserID, date: signal.EntryDate}
	merged, ok := r.signals[key]
	if !ok {
		merged = wellbeing.DailySignal{UserID: signal.UserID, EntryDate: signal.EntryDate}
	}
	if signal.Mood != nil {
		merged.Mood = copyInt(signal.Mood)
	}
	if signal.StressLevel != nil {
		merged.StressLevel = copyInt(signal.StressLevel)
	}
	if signal.SleepHours != nil {
		merged.SleepHours = copyFloat(signal.SleepHours)
	}
	if len(signal.SentimentScores) > 0 {
		merged.SentimentScores = append(append([]float64(nil), merged.SentimentScores...), signal.SentimentScores...)
	}
	r.signals[key] = merged
	return cloneSignal(merged), nil
}

// GetSignal returns the stored check-in for the day.
func (r *MemoryRepository) GetSignal(_ context.Context, userID uuid.UUID, date string) (wellbeing.DailySignal, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	signal, ok := r.signals[signalKey{userID: userID, date: date}]
	if !ok {
		return wellbeing.DailySignal{}, false, nil
	}
	return cloneSignal(signal), true, nil
}

// AppendScore stores a new composite row and assigns its id.
func (r *MemoryRepository) AppendScore(_ context.Context, score wellbeing.CompositeScore) (wellbeing.CompositeScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	score.ID = r.seq
	r.scores[score.UserID] = append(r.scores[score.UserID], score)
	return score, nil
}

// ListRecent returns the latest row per entry date, newest date first.
func (r *MemoryRepository) ListRecent(_ context.Context, userID uuid.UUID, limit int) ([]wellbeing.CompositeScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	latest := make(map[string]wellbeing.CompositeScore)
	for _, row := range r.scores[userID] {
		current, ok := latest[row.EntryDate]
		if !ok || !row.CalculatedAt.Before(current.CalculatedAt) {
			latest[row.EntryDate] = row
		}
	}
	out := make([]wellbeing.CompositeScore, 0, len(latest))
	for _, row := range latest {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EntryDate > out[j].EntryDate
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneSignal(signal wellbeing.DailySignal) wellbeing.DailySignal {
	signal.Mood = copyInt(signal.Mood)
	signal.StressLevel = copyInt(signal.StressLevel)
	signal.SleepHours = copyFloat(signal.SleepHours)
	if signal.SentimentScores != nil {
		signal.SentimentScores = append([]float64(nil), signal.SentimentScores...)
	}
	return signal
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

var (
	_ wellbeing.SignalRepository = (*MemoryRepository)(nil)
	_ wellbeing.ScoreRepository  = (*MemoryRepository)(nil)
)
