package attendance

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"rollcall/internal/store"
)

func redisCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := store.NewRedis(addr)
	t.Cleanup(func() { _ = rdb.Close() })
	if !rdb.Healthy(context.Background()) {
		t.Fatalf("redis at %s not reachable", addr)
	}
	return NewRedisCache(rdb.Client, time.Minute)
}

func TestRedisCacheKeepsNewestStatusVersion(t *testing.T) {
	cache := redisCache(t)
	ctx := context.Background()
	roll, date := "R-"+uuid.NewString(), "2024-01-01"
	t.Cleanup(func() { cache.client.Del(ctx, statusKey(roll, date)) })

	if _, ok, err := cache.Status(ctx, roll, date); err != nil || ok {
		t.Fatalf("empty cache = %v, %v", ok, err)
	}
	if err := cache.PutStatus(ctx, roll, date, Present, 2); err != nil {
		t.Fatalf("put v2: %v", err)
	}
	if err := cache.PutStatus(ctx, roll, date, Absent, 1); err != nil {
		t.Fatalf("put v1: %v", err)
	}
	if err := cache.PutStatus(ctx, roll, date, Absent, 0); err != nil {
		t.Fatalf("put v0: %v", err)
	}
	if st, ok, err := cache.Status(ctx, roll, date); err != nil || !ok || st != Present {
		t.Fatalf("status = %s %v %v, want Present from v2", st, ok, err)
	}
	if err := cache.PutStatus(ctx, roll, date, Absent, 3); err != nil {
		t.Fatalf("put v3: %v", err)
	}
	if st, _, _ := cache.Status(ctx, roll, date); st != Absent {
		t.Fatalf("status = %s, want Absent from v3", st)
	}
}

func TestRedisCacheDropSummary(t *testing.T) {
	cache := redisCache(t)
	ctx := context.Background()
	date := "summary-" + uuid.NewString()

	if err := cache.SetSummary(ctx, Summary{Date: date, Present: 2, Absent: 1}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if sum, ok, err := cache.Summary(ctx, date); err != nil || !ok || sum.Present != 2 {
		t.Fatalf("summary = %+v %v %v", sum, ok, err)
	}
	if err := cache.DropSummary(ctx, date); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, ok, err := cache.Summary(ctx, date); err != nil || ok {
		t.Fatalf("summary after drop = %v, %v", ok, err)
	}
}
