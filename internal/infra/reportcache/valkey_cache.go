package reportcache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
)

// saveIfCurrent writes a report field only while the generation counter still matches.
// KEYS: report hash, generation counter. ARGV: generation, field, payload, ttl seconds.
var saveIfCurrent = valkey.NewLuaScript(`
local current = redis.call('GET', KEYS[2])
if (current or '0') ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
if tonumber(ARGV[4]) > 0 then
	redis.call('EXPIRE', KEYS[1], ARGV[4])
end
return 1
`)

// ValkeyCache stores reports in one hash per user, keyed by window length, so a
// single DEL invalidates every window. A per-user counter tracks invalidations.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "wellbeing"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

func (c *ValkeyCache) GetReport(ctx context.Context, userID uuid.UUID, days int) (wellbeing.WeeklyReport, bool, error) {
	cmd := c.client.B().Hget().Key(c.reportKey(userID)).Field(strconv.Itoa(days)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return wellbeing.WeeklyReport{}, false, nil
		}
		return wellbeing.WeeklyReport{}, false, err
	}
	var report wellbeing.WeeklyReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return wellbeing.WeeklyReport{}, false, err
	}
	return report, true, nil
}

func (c *ValkeyCache) Generation(ctx context.Context, userID uuid.UUID) (int64, error) {
	generation, err := c.client.Do(ctx, c.client.B().Get().Key(c.generationKey(userID)).Build()).AsInt64()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return generation, nil
}

func (c *ValkeyCache) SaveReport(ctx context.Context, report wellbeing.WeeklyReport, days int, ttl time.Duration, generation int64) (bool, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return false, err
	}
	seconds := int64(0)
	if ttl > 0 {
		seconds = int64(ttl / time.Second)
		if seconds < 1 {
			seconds = 1
		}
	}
	keys := []string{c.reportKey(report.UserID), c.generationKey(report.UserID)}
	args := []string{
		strconv.FormatInt(generation, 10),
		strconv.Itoa(days),
		string(payload),
		strconv.FormatInt(seconds, 10),
	}
	stored, err := saveIfCurrent.Exec(ctx, c.client, keys, args).AsInt64()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

func (c *ValkeyCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	cmds := valkey.Commands{
		c.client.B().Incr().Key(c.generationKey(userID)).Build(),
		c.client.B().Del().Key(c.reportKey(userID)).Build(),
	}
	for _, resp := range c.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (c *ValkeyCache) reportKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:report:%s", c.prefix, userID)
}

func (c *ValkeyCache) generationKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:report-gen:%s", c.prefix, userID)
}

var _ wellbeing.ReportCache = (*ValkeyCache)(nil)
