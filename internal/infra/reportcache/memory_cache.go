package reportcache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
)

type cachedReport struct {
	report    wellbeing.WeeklyReport
	expiresAt time.Time
}

// MemoryCache is an in-memory report cache for tests/dev.
type MemoryCache struct {
	mu          sync.RWMutex
	reports     map[uuid.UUID]map[int]cachedReport
	generations map[uuid.UUID]int64
	now         func() time.Time
}

// NewMemoryCache constructs a cache backed by process memory.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		reports:     make(map[uuid.UUID]map[int]cachedReport),
		generations: make(map[uuid.UUID]int64),
		now:         time.Now,
	}
}

// GetReport implements wellbeing.ReportCache.
func (c *MemoryCache) GetReport(_ context.Context, userID uuid.UUID, days int) (wellbeing.WeeklyReport, bool, error) {
	c.mu.RLock()
	entry, ok := c.reports[userID][days]
	c.mu.RUnlock()
	if !ok {
		return wellbeing.WeeklyReport{}, false, nil
	}
	if c.hasExpired(entry.expiresAt) {
		c.mu.Lock()
		delete(c.reports[userID], days)
		c.mu.Unlock()
		return wellbeing.WeeklyReport{}, false, nil
	}
	return entry.report, true, nil
}

// Generation returns how many times the user's reports have been invalidated.
func (c *MemoryCache) Generation(_ context.Context, userID uuid.UUID) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[userID], nil
}

// SaveReport caches the report with optional TTL unless the user was invalidated after
// generation was read.
func (c *MemoryCache) SaveReport(_ context.Context, report wellbeing.WeeklyReport, days int, ttl time.Duration, generation int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[report.UserID] != generation {
		return false, nil
	}
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	byDays, ok := c.reports[report.UserID]
	if !ok {
		byDays = make(map[int]cachedReport)
		c.reports[report.UserID] = byDays
	}
	byDays[days] = cachedReport{report: report, expiresAt: exp}
	return true, nil
}

// Invalidate drops every cached window for the user.
func (c *MemoryCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	delete(c.reports, userID)
	c.generations[userID]++
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(c.now())
}

var _ wellbeing.ReportCache = (*MemoryCache)(nil)
