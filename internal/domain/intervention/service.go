package intervention

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/wellbeing/pkg/errors"
	"github.com/yanqian/wellbeing/pkg/util"
)

// Service exposes intervention generation and the status lifecycle.
type Service interface {
	Generate(ctx context.Context, userID uuid.UUID, at time.Time, phq9, gad7 *int) ([]Intervention, error)
	List(ctx context.Context, userID uuid.UUID, filter Filter) ([]Intervention, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status Status) (Intervention, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the intervention domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "intervention.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Generate(ctx context.Context, userID uuid.UUID, at time.Time, phq9, gad7 *int) ([]Intervention, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "user id is required", nil)
	}
	items := Evaluate(userID, at, phq9, gad7)
	if len(items) == 0 {
		return nil, nil
	}
	if err := s.repo.InsertBatch(ctx, items); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to persist interventions", err)
	}
	for _, item := range items {
		s.logger.Info("intervention generated",
			"user_id", userID,
			"category", item.ActionPayload.Category,
			"severity", item.Severity,
			"score", item.ActionPayload.Score,
		)
	}
	return items, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter Filter) ([]Intervention, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "user id is required", nil)
	}
	if filter.Status != nil {
		if _, ok := ParseStatus(string(*filter.Status)); !ok {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown status filter", nil)
		}
	}
	items, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list interventions", err)
	}
	return items, nil
}

func (s *service) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status Status) (Intervention, error) {
	if _, ok := ParseStatus(string(status)); !ok {
		return Intervention{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown status", nil)
	}
	item, found, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Intervention{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load intervention", err)
	}
	if !found {
		return Intervention{}, apperrors.Wrap(apperrors.CodeNotFound, "intervention not found", nil)
	}
	if !CanTransition(item.Status, status) {
		return Intervention{}, apperrors.Wrap(apperrors.CodeInvalidTransition, "cannot move intervention from "+string(item.Status)+" to "+string(status), nil)
	}

	at := s.now()
	updated, err := s.repo.UpdateStatus(ctx, userID, id, item.Status, status, at)
	if err != nil {
		return Intervention{}, apperrors.Wrap(apperrors.CodeStorage, "failed to update intervention", err)
	}
	if !updated {
		return Intervention{}, apperrors.Wrap(apperrors.CodeInvalidTransition, "intervention is no longer "+string(item.Status), nil)
	}
	item.MarkStatus(status, at)
	return item, nil
}
