package intervention

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/wellbeing/pkg/errors"
)

func TestServiceGeneratePersists(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newTestLogger())
	userID := uuid.New()

	items, err := svc.Generate(context.Background(), userID, time.Now(), intPtr(22), intPtr(16))
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Len(t, repo.items, 2)
}

func TestServiceGenerateNothingToPersist(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newTestLogger())

	items, err := svc.Generate(context.Background(), uuid.New(), time.Now(), intPtr(3), nil)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Zero(t, repo.inserts)
}

func TestServiceGenerateStorageFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("db down")
	svc := NewService(repo, newTestLogger())

	_, err := svc.Generate(context.Background(), uuid.New(), time.Now(), intPtr(22), nil)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
}

func TestServiceUpdateStatusLifecycle(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	fixed := time.Date(2024, 5, 7, 8, 0, 0, 0, time.UTC)
	svc := &service{repo: repo, logger: newTestLogger(), now: func() time.Time { return fixed }}

	items, err := svc.Generate(context.Background(), userID, fixed, intPtr(12), nil)
	require.NoError(t, err)
	id := items[0].ID

	viewed, err := svc.UpdateStatus(context.Background(), userID, id, StatusViewed)
	require.NoError(t, err)
	require.Equal(t, StatusViewed, viewed.Status)
	require.NotNil(t, viewed.ViewedAt)
	require.Equal(t, fixed, *viewed.ViewedAt)

	dismissed, err := svc.UpdateStatus(context.Background(), userID, id, StatusDismissed)
	require.NoError(t, err)
	require.Equal(t, StatusDismissed, dismissed.Status)
	require.NotNil(t, dismissed.ViewedAt)
	require.NotNil(t, dismissed.DismissedAt)

	_, err = svc.UpdateStatus(context.Background(), userID, id, StatusViewed)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTransition))
}

func TestServiceUpdateStatusConcurrentTerminalTransitions(t *testing.T) {
	base := newFakeRepo()
	userID := uuid.New()
	item := Intervention{ID: uuid.New(), UserID: userID, Status: StatusPending}
	base.items[item.ID] = item

	repo := &gatedRepo{fakeRepo: base}
	repo.readers.Add(2)
	svc := NewService(repo, newTestLogger())

	targets := []Status{StatusActed, StatusDismissed}
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target Status) {
			defer wg.Done()
			_, errs[i] = svc.UpdateStatus(context.Background(), userID, item.ID, target)
		}(i, target)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTransition), "unexpected error: %v", err)
	}
	require.Equal(t, 1, succeeded)

	final := base.items[item.ID]
	require.True(t, final.Status == StatusActed || final.Status == StatusDismissed)
	require.False(t, final.ActedAt != nil && final.DismissedAt != nil, "both terminal timestamps set")
}

func TestServiceUpdateStatusErrors(t *testing.T) {
	svc := NewService(newFakeRepo(), newTestLogger())

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), Status("archived"))
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), StatusViewed)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestServiceListRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newFakeRepo(), newTestLogger())
	bogus := Status("archived")

	_, err := svc.List(context.Background(), uuid.New(), Filter{Status: &bogus})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

type fakeRepo struct {
	mu      sync.Mutex
	items   map[uuid.UUID]Intervention
	inserts int
	err     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]Intervention)}
}

func (r *fakeRepo) InsertBatch(_ context.Context, items []Intervention) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.inserts++
	for _, item := range items {
		r.items[item.ID] = item
	}
	return nil
}

func (r *fakeRepo) List(_ context.Context, userID uuid.UUID, filter Filter) ([]Intervention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Intervention
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeRepo) Get(_ context.Context, userID, id uuid.UUID) (Intervention, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return Intervention{}, false, nil
	}
	return item, true, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, userID, id uuid.UUID, from, to Status, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID || item.Status != from {
		return false, nil
	}
	item.MarkStatus(to, at)
	r.items[id] = item
	return true, nil
}

// gatedRepo holds every Get until the expected number of readers have loaded the row.
type gatedRepo struct {
	*fakeRepo
	readers sync.WaitGroup
}

func (r *gatedRepo) Get(ctx context.Context, userID, id uuid.UUID) (Intervention, bool, error) {
	item, ok, err := r.fakeRepo.Get(ctx, userID, id)
	r.readers.Done()
	r.readers.Wait()
	return item, ok, err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
