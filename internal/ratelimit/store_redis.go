package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript implements the same admit-or-reject decision as the
// in-memory store, atomically on the Redis side. Each admission is a member
// of a sorted set scored by its timestamp in milliseconds.
//
// KEYS[1] window key
// ARGV[1] now (unix millis)
// ARGV[2] window (millis)
// ARGV[3] limit
// ARGV[4] member id
//
// Returns {allowed, count, oldest-score}.
var slidingWindowScript = redis.NewScript(`
local cutoff = tonumber(ARGV[1]) - tonumber(ARGV[2])
redis.call('ZREMRANGEBYSCORE', KEYS[1], 0, cutoff)
local count = redis.call('ZCARD', KEYS[1])
if count < tonumber(ARGV[3]) then
	redis.call('ZADD', KEYS[1], ARGV[1], ARGV[4])
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
	count = count + 1
	local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
	return {1, count, oldest[2]}
end
local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
return {0, count, oldest[2]}
`)

// RedisStore implements Limiter on a shared Redis instance so multiple
// replicas enforce one budget per key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := time.Now()
	res, err := slidingWindowScript.Run(ctx, s.client,
		[]string{s.prefix + key},
		now.UnixMilli(), window.Milliseconds(), limit, uuid.NewString(),
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("ratelimit script: %w", err)
	}
	if len(res) < 3 {
		return nil, fmt.Errorf("ratelimit script: unexpected reply of %d values", len(res))
	}

	allowed := res[0].(int64) == 1
	count := int(res[1].(int64))

	resetAt := now.Add(window)
	if scoreStr, ok := res[2].(string); ok {
		var oldest int64
		if _, err := fmt.Sscanf(scoreStr, "%d", &oldest); err == nil {
			resetAt = time.UnixMilli(oldest).Add(window)
		}
	}

	out := &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: limit - count,
		ResetAt:   resetAt,
	}
	if !allowed {
		out.Remaining = 0
		out.RetryAfter = int(time.Until(resetAt).Seconds()) + 1
	}
	return out, nil
}
