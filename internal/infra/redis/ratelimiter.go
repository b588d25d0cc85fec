package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kursadbilgin/call-assistant/internal/ratelimit"
	goredis "github.com/redis/go-redis/v9"
)

const (
	defaultPollsPerSec int64 = 5
	windowSeconds            = 1
)

var allowScript = goredis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[2])
end
if current > tonumber(ARGV[1]) then
  return 0
end
return 1
`)

var _ ratelimit.PollLimiter = (*RedisPollLimiter)(nil)

// RedisPollLimiter is a distributed per-user, per-second poll limiter. The
// counter key rotates every second so a burst from one session cannot hammer
// the notification query for everyone.
type RedisPollLimiter struct {
	client      *goredis.Client
	pollsPerSec int64
	now         func() time.Time
	script      *goredis.Script
}

func NewRedisPollLimiter(client *goredis.Client, pollsPerSec int) (*RedisPollLimiter, error) {
	return newRedisPollLimiter(client, int64(pollsPerSec), time.Now)
}

func newRedisPollLimiter(
	client *goredis.Client,
	pollsPerSec int64,
	nowFn func() time.Time,
) (*RedisPollLimiter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if pollsPerSec <= 0 {
		pollsPerSec = defaultPollsPerSec
	}
	if nowFn == nil {
		nowFn = time.Now
	}

	return &RedisPollLimiter{
		client:      client,
		pollsPerSec: pollsPerSec,
		now:         nowFn,
		script:      allowScript,
	}, nil
}

func (r *RedisPollLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	if r == nil || r.client == nil || r.script == nil {
		return false, fmt.Errorf("poll limiter is not initialized")
	}

	normalizedUserID := strings.TrimSpace(userID)
	if normalizedUserID == "" {
		return false, fmt.Errorf("user id is required")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	key := fmt.Sprintf("polllimit:%s:%d", normalizedUserID, r.now().UTC().Unix())
	result, err := r.script.Run(ctx, r.client, []string{key}, r.pollsPerSec, windowSeconds).Int()
	if err != nil {
		return false, fmt.Errorf("failed to evaluate poll limit: %w", err)
	}

	return result == 1, nil
}
