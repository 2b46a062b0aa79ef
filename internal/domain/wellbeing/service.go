package wellbeing

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/wellbeing/pkg/errors"
	"github.com/yanqian/wellbeing/pkg/util"
)

// Service exposes check-in ingestion, daily scoring and weekly reports.
type Service interface {
	RecordSignal(ctx context.Context, userID uuid.UUID, req SignalRequest) (DailySignal, error)
	CalculateDaily(ctx context.Context, userID uuid.UUID, date string) (DailyResult, error)
	WeeklyReport(ctx context.Context, userID uuid.UUID, days int) (WeeklyReport, error)
	HandleJob(ctx context.Context, name string, payload map[string]any)
}

type service struct {
	cfg           Config
	signals       SignalRepository
	scores        ScoreRepository
	cache         ReportCache
	queue         JobQueue
	interventions InterventionGenerator
	logger        *slog.Logger
	now           func() time.Time
}

// NewService wires up the wellbeing domain.
func NewService(cfg Config, signals SignalRepository, scores ScoreRepository, cache ReportCache, queue JobQueue, interventions InterventionGenerator, logger *slog.Logger) Service {
	return &service{
		cfg:           cfg,
		signals:       signals,
		scores:        scores,
		cache:         cache,
		queue:         queue,
		interventions: interventions,
		logger:        logger.With("component", "wellbeing.service"),
		now:           util.NowUTC,
	}
}

func (s *service) RecordSignal(ctx context.Context, userID uuid.UUID, req SignalRequest) (DailySignal, error) {
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return DailySignal{}, err
	}
	signal := DailySignal{
		UserID:          userID,
		EntryDate:       date,
		Mood:            req.Mood,
		SleepHours:      req.SleepHours,
		StressLevel:     req.StressLevel,
		SentimentScores: req.SentimentScores,
	}
	if err := signal.Validate(); err != nil {
		return DailySignal{}, err
	}

	stored, err := s.signals.UpsertSignal(ctx, signal)
	if err != nil {
		return DailySignal{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store daily signal", err)
	}
	s.logger.Info("daily signal recorded", "user_id", userID, "date", date)

	payload := map[string]any{"userId": userID.String(), "date": date}
	if err := s.queue.Enqueue(ctx, JobRecalculateDaily, payload); err != nil {
		s.logger.Warn("recalculation enqueue failed", "user_id", userID, "date", date, "error", err)
	}
	return stored, nil
}

func (s *service) CalculateDaily(ctx context.Context, userID uuid.UUID, date string) (DailyResult, error) {
	if userID == uuid.Nil {
		return DailyResult{}, apperrors.Wrap(apperrors.CodeInvalidInput, "user id is required", nil)
	}
	day, err := s.resolveDate(date)
	if err != nil {
		return DailyResult{}, err
	}
	signal, found, err := s.signals.GetSignal(ctx, userID, day)
	if err != nil {
		return DailyResult{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load daily signal", err)
	}
	if !found {
		return DailyResult{}, apperrors.Wrap(apperrors.CodeNoData, "no check-in recorded for "+day, nil)
	}

	now := s.now()
	score, err := s.scores.AppendScore(ctx, ScoreSignal(signal, now))
	if err != nil {
		return DailyResult{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store composite score", err)
	}
	s.logger.Info("composite score calculated",
		"user_id", userID,
		"date", day,
		"composite", score.CompositeScore,
		"risk_level", score.RiskLevel,
	)

	result := DailyResult{Score: score}
	if score.PHQ9Score != nil || score.GAD7Score != nil {
		items, err := s.interventions.Generate(ctx, userID, now, score.PHQ9Score, score.GAD7Score)
		if err != nil {
			s.logger.Warn("intervention generation failed", "user_id", userID, "error", err)
		}
		result.Interventions = items
	}

	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("report cache invalidation failed", "user_id", userID, "error", err)
	}
	return result, nil
}

func (s *service) WeeklyReport(ctx context.Context, userID uuid.UUID, days int) (WeeklyReport, error) {
	if userID == uuid.Nil {
		return WeeklyReport{}, apperrors.Wrap(apperrors.CodeInvalidInput, "user id is required", nil)
	}
	if days == 0 {
		days = s.cfg.DefaultDays
	}
	if days < 1 || (s.cfg.MaxDays > 0 && days > s.cfg.MaxDays) {
		return WeeklyReport{}, apperrors.Wrap(apperrors.CodeInvalidInput, "days is out of range", nil)
	}

	cached, ok, err := s.cache.GetReport(ctx, userID, days)
	if err != nil {
		s.logger.Warn("report cache lookup failed", "user_id", userID, "error", err)
	}
	if ok {
		return cached, nil
	}

	// The generation is read before the rows so a score appended meanwhile keeps this report out
	// of the cache.
	generation, genErr := s.cache.Generation(ctx, userID)
	if genErr != nil {
		s.logger.Warn("report cache generation lookup failed", "user_id", userID, "error", genErr)
	}

	rows, err := s.scores.ListRecent(ctx, userID, days)
	if err != nil {
		return WeeklyReport{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load composite scores", err)
	}
	report := BuildReport(userID, days, rows, s.now())
	if !report.Available {
		s.logger.Info("weekly report has no data", "user_id", userID, "days", days)
		return report, nil
	}
	if genErr != nil {
		return report, nil
	}
	saved, err := s.cache.SaveReport(ctx, report, days, s.cfg.CacheTTL, generation)
	if err != nil {
		s.logger.Warn("report cache save failed", "user_id", userID, "error", err)
	} else if !saved {
		s.logger.Debug("report not cached, scores changed while building", "user_id", userID, "days", days)
	}
	return report, nil
}

func (s *service) HandleJob(ctx context.Context, name string, payload map[string]any) {
	if name != JobRecalculateDaily {
		s.logger.Warn("unknown job", "name", name)
		return
	}
	rawUser, _ := payload["userId"].(string)
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		s.logger.Warn("recalculation job has invalid user id", "user_id", rawUser, "error", err)
		return
	}
	date, _ := payload["date"].(string)
	if _, err := s.CalculateDaily(ctx, userID, date); err != nil {
		s.logger.Error("recalculation job failed", "user_id", userID, "date", date, "error", err)
	}
}

func (s *service) resolveDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return util.FormatDate(s.now()), nil
	}
	if _, err := util.ParseDate(trimmed); err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	return trimmed, nil
}

// ScoreSignal derives the composite row for a daily signal.
func ScoreSignal(signal DailySignal, calculatedAt time.Time) CompositeScore {
	mood := intToFloat(signal.Mood)
	stress := intToFloat(signal.StressLevel)
	composite := ComputeComposite(mood, stress, signal.SleepHours)
	return CompositeScore{
		UserID:         signal.UserID,
		EntryDate:      signal.EntryDate,
		MoodAvg:        mood,
		StressAvg:      stress,
		SleepAvg:       signal.SleepHours,
		SentimentAvg:   signal.SentimentAvg(),
		CompositeScore: composite.Composite,
		RiskLevel:      composite.RiskLevel,
		PHQ9Score:      EstimatePHQ9(mood),
		GAD7Score:      EstimateGAD7(stress),
		CalculatedAt:   calculatedAt.UTC(),
	}
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
