package schedule

import (
	"testing"
	"time"
)

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		delta time.Duration
		want  Tier
	}{
		{name: "in the past", delta: -time.Minute, want: TierOverdue},
		{name: "exactly now", delta: 0, want: TierOverdue},
		{name: "one second out", delta: time.Second, want: TierImminent},
		{name: "exactly five minutes", delta: 5 * time.Minute, want: TierImminent},
		{name: "five minutes one second", delta: 5*time.Minute + time.Second, want: TierApproaching},
		{name: "exactly fifteen minutes", delta: 15 * time.Minute, want: TierApproaching},
		{name: "fifteen minutes one second", delta: 15*time.Minute + time.Second, want: TierScheduled},
		{name: "hours out", delta: 3 * time.Hour, want: TierScheduled},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(now.Add(tt.delta), now); got != tt.want {
				t.Fatalf("Classify(now+%s) = %s, want %s", tt.delta, got, tt.want)
			}
		})
	}
}

func TestTimeUntil(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		delta time.Duration
		want  string
	}{
		{name: "past", delta: -time.Second, want: "Overdue"},
		{name: "exactly due", delta: 0, want: "Overdue"},
		{name: "minutes only", delta: 42 * time.Minute, want: "42m"},
		{name: "hours and minutes", delta: 2*time.Hour + 5*time.Minute, want: "2h 5m"},
		{name: "days and hours", delta: 26 * time.Hour, want: "1d 2h"},
		{name: "floor not round", delta: 59*time.Minute + 59*time.Second, want: "59m"},
		{name: "exactly one day", delta: 24 * time.Hour, want: "1d 0h"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TimeUntil(now.Add(tt.delta), now); got != tt.want {
				t.Fatalf("TimeUntil(now+%s) = %q, want %q", tt.delta, got, tt.want)
			}
		})
	}
}
