package schedule

import (
	"time"
)

const (
	// PostponeStep is the fixed bump applied by a manual snooze.
	PostponeStep = 10 * time.Minute

	// claimFollowUpDelay is the wait between a claim's connection time and
	// its first follow-up call.
	claimFollowUpDelay = time.Hour
)

// Engine computes next-attempt timestamps for reminders. All timestamps it
// returns are minute-aligned. The clock is injected so boundary behavior is
// deterministic under test.
type Engine struct {
	now func() time.Time
	loc *time.Location
}

// NewEngine builds an engine with the given clock and operator-input
// location. Nil arguments fall back to time.Now and UTC.
func NewEngine(now func() time.Time, loc *time.Location) *Engine {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{now: now, loc: loc}
}

// InitialSchedule returns the due time for a fresh reminder at attempt 1.
func (e *Engine) InitialSchedule(table IntervalTable) time.Time {
	return CeilToMinute(e.now().Add(table.Wait(1)))
}

// Advance moves a reminder to its next attempt. The wait is looked up for
// the new attempt number and applied from true current time, not from the
// previous rounded value. The caller transitions the reminder kind to retry.
func (e *Engine) Advance(currentAttempt int, table IntervalTable) (int, time.Time) {
	next := currentAttempt + 1
	return next, CeilToMinute(e.now().Add(table.Wait(next)))
}

// Reschedule parses an operator-supplied timestamp and rounds it. The
// attempt number is left untouched.
func (e *Engine) Reschedule(raw string) (time.Time, error) {
	t, err := ParseLocalDateTime(raw, e.loc)
	if err != nil {
		return time.Time{}, err
	}
	return CeilToMinute(t), nil
}

// Postpone bumps the current due time by a fixed ten minutes. Unlike every
// other operation it compounds on the already-rounded current value, so
// repeated postponements stack in clean ten-minute increments.
func (e *Engine) Postpone(currentNextAttempt time.Time) time.Time {
	return CeilToMinute(currentNextAttempt.Add(PostponeStep))
}

// LinkToClaim returns the due time for the reminder created alongside a
// claim: one hour after the connection time, attempt 1.
func (e *Engine) LinkToClaim(connectionDatetime time.Time) time.Time {
	return CeilToMinute(connectionDatetime.Add(claimFollowUpDelay))
}

// Now exposes the engine clock for callers that stamp first_attempt and
// notified_at from the same time source.
func (e *Engine) Now() time.Time {
	return e.now()
}
