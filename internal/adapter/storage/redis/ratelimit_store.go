package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "atm:ratelimit:"

// RateLimitStore counts requests per (rule, caller) in fixed windows.
type RateLimitStore struct {
	client *goredis.Client
	now    func() time.Time
}

func NewRateLimitStore(client *goredis.Client) *RateLimitStore {
	return &RateLimitStore{client: client, now: time.Now}
}

// RateLimitResult is the outcome of one Allow call.
type RateLimitResult struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration // zero when allowed
}

// Allow counts one request for caller under rule. The counter key carries the
// window number, so a new window starts from zero without a reset step.
func (s *RateLimitStore) Allow(ctx context.Context, rule, caller string, limit int64, window time.Duration) (*RateLimitResult, error) {
	if window < time.Second {
		return nil, fmt.Errorf("rate limit window %s is shorter than one second", window)
	}

	now := s.now()
	windowSecs := int64(window / time.Second)
	windowID := now.Unix() / windowSecs
	key := fmt.Sprintf("%s%s:%s:%d", rateLimitPrefix, rule, caller, windowID)

	var incr *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window+time.Second)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("counting %s for %s: %w", rule, caller, err)
	}

	count := incr.Val()
	resetAt := time.Unix((windowID+1)*windowSecs, 0)
	result := &RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
	if !result.Allowed {
		result.RetryAfter = resetAt.Sub(now)
	}
	return result, nil
}
