package schedule

import (
	"fmt"
	"time"
)

// Tier is the discrete urgency classification of a due time.
type Tier string

const (
	TierOverdue     Tier = "OVERDUE"
	TierImminent    Tier = "IMMINENT"
	TierApproaching Tier = "APPROACHING"
	TierScheduled   Tier = "SCHEDULED"
)

func (t Tier) String() string { return string(t) }

const (
	imminentWindow    = 5 * time.Minute
	approachingWindow = 15 * time.Minute
)

// Classify maps the distance between a due time and now onto a tier.
// Boundaries are inclusive on the near side: exactly 5 minutes out is still
// imminent, exactly 15 still approaching.
func Classify(nextAttempt, now time.Time) Tier {
	delta := nextAttempt.Sub(now)
	switch {
	case delta <= 0:
		return TierOverdue
	case delta <= imminentWindow:
		return TierImminent
	case delta <= approachingWindow:
		return TierApproaching
	default:
		return TierScheduled
	}
}

// TimeUntil renders the distance to a due time for display. Components are
// extracted with floor division; this never rounds up, unlike CeilToMinute.
func TimeUntil(nextAttempt, now time.Time) string {
	if !nextAttempt.After(now) {
		return "Overdue"
	}

	totalMinutes := int(nextAttempt.Sub(now).Minutes())
	days := totalMinutes / (24 * 60)
	hours := (totalMinutes % (24 * 60)) / 60
	minutes := totalMinutes % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
