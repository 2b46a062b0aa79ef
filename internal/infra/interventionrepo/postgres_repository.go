package interventionrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/wellbeing/internal/domain/intervention"
)

// PostgresRepository persists interventions in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) InsertBatch(ctx context.Context, items []intervention.Intervention) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, item := range items {
		payload, err := json.Marshal(item.ActionPayload)
		if err != nil {
			return fmt.Errorf("encode action payload: %w", err)
		}
		batch.Queue(`
			INSERT INTO interventions (
				id, user_id, week_start_date, intervention_text, severity,
				action_type, action_payload, status, created_at
			)
			VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9)
		`, item.ID, item.UserID, item.WeekStartDate, item.InterventionText, string(item.Severity),
			item.ActionType, payload, string(item.Status), item.CreatedAt)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *PostgresRepository) List(ctx context.Context, userID uuid.UUID, filter intervention.Filter) ([]intervention.Intervention, error) {
	query := selectColumns + `
		FROM interventions
		WHERE user_id = $1
	`
	args := []any{userID}
	argPos := 2
	if filter.Status != nil {
		query += ` AND status = $` + strconv.Itoa(argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(argPos)
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]intervention.Intervention, 0)
	for rows.Next() {
		item, err := scanIntervention(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id uuid.UUID) (intervention.Intervention, bool, error) {
	row := r.pool.QueryRow(ctx, selectColumns+`
		FROM interventions
		WHERE id = $1 AND user_id = $2
		LIMIT 1
	`, id, userID)
	item, err := scanIntervention(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return intervention.Intervention{}, false, nil
		}
		return intervention.Intervention{}, false, err
	}
	return item, true, nil
}

// UpdateStatus is a compare-and-set on the status column, so concurrent transitions out of the
// same state cannot both apply.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, userID, id uuid.UUID, from, to intervention.Status, at time.Time) (bool, error) {
	var column string
	switch to {
	case intervention.StatusViewed:
		column = "viewed_at"
	case intervention.StatusActed:
		column = "acted_at"
	case intervention.StatusDismissed:
		column = "dismissed_at"
	default:
		return false, fmt.Errorf("unsupported status %q", to)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE interventions
		SET status = $1, `+column+` = $2
		WHERE id = $3 AND user_id = $4 AND status = $5
	`, string(to), at.UTC(), id, userID, string(from))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const selectColumns = `
	SELECT id, user_id, to_char(week_start_date, 'YYYY-MM-DD'), intervention_text, severity,
		action_type, action_payload, status, created_at, viewed_at, acted_at, dismissed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntervention(row rowScanner) (intervention.Intervention, error) {
	var (
		item     intervention.Intervention
		severity string
		status   string
		payload  []byte
	)
	if err := row.Scan(
		&item.ID, &item.UserID, &item.WeekStartDate, &item.InterventionText, &severity,
		&item.ActionType, &payload, &status, &item.CreatedAt,
		&item.ViewedAt, &item.ActedAt, &item.DismissedAt,
	); err != nil {
		return intervention.Intervention{}, err
	}
	item.Severity = intervention.Severity(severity)
	item.Status = intervention.Status(status)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &item.ActionPayload); err != nil {
			return intervention.Intervention{}, fmt.Errorf("decode action payload: %w", err)
		}
	}
	return item, nil
}

var _ intervention.Repository = (*PostgresRepository)(nil)
