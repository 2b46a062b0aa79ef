package wellbeing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/wellbeing/internal/domain/intervention"
)

// SignalRepository stores raw daily check-ins keyed by (user, entry date).
type SignalRepository interface {
	UpsertSignal(ctx context.Context, signal DailySignal) (DailySignal, error)
	GetSignal(ctx context.Context, userID uuid.UUID, date string) (DailySignal, bool, error)
}

// ScoreRepository stores composite scores. Rows are append-only; ListRecent returns the
// latest row per entry date, newest date first.
type ScoreRepository interface {
	AppendScore(ctx context.Context, score CompositeScore) (CompositeScore, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]CompositeScore, error)
}

// ReportCache keeps computed reports for a short while. Invalidate drops the user's reports and
// advances their generation; SaveReport stores a report only while the generation it was built
// under is still current, and reports whether it did.
type ReportCache interface {
	GetReport(ctx context.Context, userID uuid.UUID, days int) (WeeklyReport, bool, error)
	Generation(ctx context.Context, userID uuid.UUID) (int64, error)
	SaveReport(ctx context.Context, report WeeklyReport, days int, ttl time.Duration, generation int64) (bool, error)
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// JobQueue enqueues background recalculations.
type JobQueue interface {
	Enqueue(ctx context.Context, name string, payload any) error
}

// InterventionGenerator evaluates and persists interventions for fresh clinical estimates.
type InterventionGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, at time.Time, phq9, gad7 *int) ([]intervention.Intervention, error)
}
