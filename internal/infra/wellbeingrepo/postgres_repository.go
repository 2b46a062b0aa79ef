package wellbeingrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
)

// PostgresRepository implements the signal and score repositories using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// UpsertSignal merges the check-in into daily_entries and appends any sentiment analyses.
func (r *PostgresRepository) UpsertSignal(ctx context.Context, signal wellbeing.DailySignal) (wellbeing.DailySignal, error) {
	var stored wellbeing.DailySignal
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO daily_entries (user_id, entry_date, mood, sleep_hours, stress_level, updated_at)
			VALUES ($1, $2::date, $3, $4, $5, NOW())
			ON CONFLICT (user_id, entry_date) DO UPDATE SET
				mood = COALESCE(EXCLUDED.mood, daily_entries.mood),
				sleep_hours = COALESCE(EXCLUDED.sleep_hours, daily_entries.sleep_hours),
				stress_level = COALESCE(EXCLUDED.stress_level, daily_entries.stress_level),
				updated_at = NOW()
			RETURNING user_id, to_char(entry_date, 'YYYY-MM-DD'), mood, sleep_hours, stress_level
		`, signal.UserID, signal.EntryDate, signal.Mood, signal.SleepHours, signal.StressLevel)
		var err error
		stored, err = scanSignal(row)
		if err != nil {
			return fmt.Errorf("upsert daily entry: %w", err)
		}

		if len(signal.SentimentScores) > 0 {
			batch := &pgx.Batch{}
			for _, score := range signal.SentimentScores {
				batch.Queue(`
					INSERT INTO sentiment_analyses (user_id, entry_date, score)
					VALUES ($1, $2::date, $3)
				`, signal.UserID, signal.EntryDate, score)
			}
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("insert sentiment analyses: %w", err)
			}
		}

		stored.SentimentScores, err = loadSentiment(ctx, tx, signal.UserID, signal.EntryDate)
		return err
	})
	if err != nil {
		return wellbeing.DailySignal{}, err
	}
	return stored, nil
}

// GetSignal loads the day's check-in together with its sentiment analyses.
func (r *PostgresRepository) GetSignal(ctx context.Context, userID uuid.UUID, date string) (wellbeing.DailySignal, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, to_char(entry_date, 'YYYY-MM-DD'), mood, sleep_hours, stress_level
		FROM daily_entries
		WHERE user_id = $1 AND entry_date = $2::date
		LIMIT 1
	`, userID, date)
	signal, err := scanSignal(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return wellbeing.DailySignal{}, false, nil
		}
		return wellbeing.DailySignal{}, false, err
	}
	signal.SentimentScores, err = loadSentiment(ctx, r.pool, userID, date)
	if err != nil {
		return wellbeing.DailySignal{}, false, err
	}
	return signal, true, nil
}

// AppendScore inserts a new wellbeing_scores row. Earlier rows for the same date are kept.
func (r *PostgresRepository) AppendScore(ctx context.Context, score wellbeing.CompositeScore) (wellbeing.CompositeScore, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO wellbeing_scores (
			user_id, entry_date, mood_avg, stress_avg, sleep_avg, sentiment_avg,
			composite_score, risk_level, phq9_score, gad7_score, calculated_at
		)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, score.UserID, score.EntryDate, score.MoodAvg, score.StressAvg, score.SleepAvg, score.SentimentAvg,
		score.CompositeScore, string(score.RiskLevel), score.PHQ9Score, score.GAD7Score, score.CalculatedAt)
	if err := row.Scan(&score.ID); err != nil {
		return wellbeing.CompositeScore{}, err
	}
	return score, nil
}

// ListRecent returns the latest row per entry date, newest date first.
func (r *PostgresRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]wellbeing.CompositeScore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, entry_date_text, mood_avg, stress_avg, sleep_avg, sentiment_avg,
			composite_score, risk_level, phq9_score, gad7_score, calculated_at
		FROM (
			SELECT DISTINCT ON (entry_date)
				id, user_id, entry_date, to_char(entry_date, 'YYYY-MM-DD') AS entry_date_text,
				mood_avg, stress_avg, sleep_avg, sentiment_avg,
				composite_score, risk_level, phq9_score, gad7_score, calculated_at
			FROM wellbeing_scores
			WHERE user_id = $1
			ORDER BY entry_date, calculated_at DESC, id DESC
		) latest
		ORDER BY entry_date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []wellbeing.CompositeScore
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, score)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanSignal(row rowScanner) (wellbeing.DailySignal, error) {
	var signal wellbeing.DailySignal
	var mood, stress *int32
	if err := row.Scan(&signal.UserID, &signal.EntryDate, &mood, &signal.SleepHours, &stress); err != nil {
		return wellbeing.DailySignal{}, err
	}
	signal.Mood = widen(mood)
	signal.StressLevel = widen(stress)
	return signal, nil
}

func scanScore(row rowScanner) (wellbeing.CompositeScore, error) {
	var (
		score      wellbeing.CompositeScore
		composite  int32
		risk       string
		phq9, gad7 *int32
	)
	if err := row.Scan(
		&score.ID, &score.UserID, &score.EntryDate,
		&score.MoodAvg, &score.StressAvg, &score.SleepAvg, &score.SentimentAvg,
		&composite, &risk, &phq9, &gad7, &score.CalculatedAt,
	); err != nil {
		return wellbeing.CompositeScore{}, err
	}
	score.CompositeScore = int(composite)
	score.RiskLevel = wellbeing.RiskLevel(risk)
	score.PHQ9Score = widen(phq9)
	score.GAD7Score = widen(gad7)
	score.CalculatedAt = score.CalculatedAt.UTC()
	return score, nil
}

func loadSentiment(ctx context.Context, q querier, userID uuid.UUID, date string) ([]float64, error) {
	rows, err := q.Query(ctx, `
		SELECT score
		FROM sentiment_analyses
		WHERE user_id = $1 AND entry_date = $2::date
		ORDER BY id
	`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func widen(v *int32) *int {
	if v == nil {
		return nil
	}
	out := int(*v)
	return &out
}

var (
	_ wellbeing.SignalRepository = (*PostgresRepository)(nil)
	_ wellbeing.ScoreRepository  = (*PostgresRepository)(nil)
)
