package intervention

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists interventions in an append-only table; only status fields change.
type Repository interface {
	InsertBatch(ctx context.Context, items []Intervention) error
	List(ctx context.Context, userID uuid.UUID, filter Filter) ([]Intervention, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Intervention, bool, error)
	// UpdateStatus moves the user's intervention from one status to another and reports false
	// when the row is missing or no longer in the from status.
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, from, to Status, at time.Time) (bool, error)
}
