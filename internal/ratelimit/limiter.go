package ratelimit

import "context"

// PollLimiter caps how often a single user may poll for due notifications.
type PollLimiter interface {
	Allow(ctx context.Context, userID string) (bool, error)
}
