package attendance

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds recently read or written statuses and daily summaries.
//
// Status entries carry the row version they were read or written at. PutStatus never
// replaces an entry with an older version, so a slow reader cannot overwrite a newer write
// and two writers settle on the version the store applied last.
type Cache interface {
	Status(ctx context.Context, rollNum, date string) (Status, bool, error)
	PutStatus(ctx context.Context, rollNum, date string, st Status, version int64) error
	Summary(ctx context.Context, date string) (Summary, bool, error)
	SetSummary(ctx context.Context, sum Summary) error
	DropSummary(ctx context.Context, date string) error
}

// RedisCache implements Cache on redis strings and hashes.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a cache whose entries live for ttl.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func statusKey(rollNum, date string) string {
	return "attendance:status:" + rollNum + ":" + date
}

func summaryKey(date string) string {
	return "attendance:summary:" + date
}

// putStatus stores "<version>:<status>" in KEYS[1] unless the current entry has a version
// at least ARGV[1]. Entries without a readable version are replaced.
var putStatus = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur then
  local sep = string.find(cur, ':', 1, true)
  local v = sep and tonumber(string.sub(cur, 1, sep - 1))
  if v and v >= tonumber(ARGV[1]) then
    return 0
  end
end
redis.call('SET', KEYS[1], ARGV[1] .. ':' .. ARGV[2], 'PX', ARGV[3])
return 1
`)

func (c *RedisCache) Status(ctx context.Context, rollNum, date string) (Status, bool, error) {
	val, err := c.client.Get(ctx, statusKey(rollNum, date)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	_, raw, ok := strings.Cut(val, ":")
	if !ok {
		return "", false, nil
	}
	st, err := ParseStatus(raw)
	if err != nil || raw == "" {
		return "", false, nil
	}
	return st, true, nil
}

func (c *RedisCache) PutStatus(ctx context.Context, rollNum, date string, st Status, version int64) error {
	return putStatus.Run(ctx, c.client, []string{statusKey(rollNum, date)},
		version, string(st), c.ttl.Milliseconds()).Err()
}

func (c *RedisCache) Summary(ctx context.Context, date string) (Summary, bool, error) {
	vals, err := c.client.HGetAll(ctx, summaryKey(date)).Result()
	if err != nil {
		return Summary{}, false, err
	}
	if len(vals) == 0 {
		return Summary{}, false, nil
	}
	present, err1 := strconv.Atoi(vals["present"])
	absent, err2 := strconv.Atoi(vals["absent"])
	if err1 != nil || err2 != nil {
		return Summary{}, false, nil
	}
	return Summary{Date: date, Present: present, Absent: absent}, true, nil
}

func (c *RedisCache) SetSummary(ctx context.Context, sum Summary) error {
	key := summaryKey(sum.Date)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, "present", sum.Present, "absent", sum.Absent)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	return err
}

func (c *RedisCache) DropSummary(ctx context.Context, date string) error {
	return c.client.Del(ctx, summaryKey(date)).Err()
}

// noCache is used when redis is not configured.
type noCache struct{}

func (noCache) Status(context.Context, string, string) (Status, bool, error)   { return "", false, nil }
func (noCache) PutStatus(context.Context, string, string, Status, int64) error { return nil }
func (noCache) Summary(context.Context, string) (Summary, bool, error)         { return Summary{}, false, nil }
func (noCache) SetSummary(context.Context, Summary) error                      { return nil }
func (noCache) DropSummary(context.Context, string) error                      { return nil }
