package schedule

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
)

// DefaultWaitMinutes is returned for any attempt number absent from the table.
const DefaultWaitMinutes = 20

// IntervalTable maps a call attempt number to the wait in minutes before the
// next attempt.
type IntervalTable map[int]int

// DefaultIntervalTable returns the built-in escalation table used when a
// user's persisted table cannot be recovered.
func DefaultIntervalTable() IntervalTable {
	return IntervalTable{1: 20, 2: 30, 3: 60, 4: 120, 5: 240}
}

// ParseIntervalTable parses the persisted JSON representation. Keys are
// attempt numbers (persisted as strings), values are positive minutes.
// A single repair pass rewrites single-quoted pseudo-JSON before giving up.
func ParseIntervalTable(raw string) (IntervalTable, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: interval table is empty", domain.ErrValidation)
	}

	table, err := decodeIntervalTable(trimmed)
	if err == nil {
		return table, nil
	}

	// Common corruption: single-quoted keys/values written by hand.
	repaired := strings.ReplaceAll(trimmed, "'", `"`)
	if table, repairErr := decodeIntervalTable(repaired); repairErr == nil {
		return table, nil
	}

	return nil, err
}

// IntervalTableWithDefaults parses raw and silently falls back to the default
// table when the representation is unrecoverable. This is the
// availability-over-strictness read path.
func IntervalTableWithDefaults(raw string) IntervalTable {
	table, err := ParseIntervalTable(raw)
	if err != nil {
		return DefaultIntervalTable()
	}
	return table
}

func decodeIntervalTable(raw string) (IntervalTable, error) {
	var byKey map[string]int
	if err := json.Unmarshal([]byte(raw), &byKey); err != nil {
		return nil, fmt.Errorf("%w: malformed interval table: %v", domain.ErrValidation, err)
	}

	table := make(IntervalTable, len(byKey))
	for key, minutes := range byKey {
		attempt, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || attempt < 1 {
			return nil, fmt.Errorf("%w: invalid attempt number %q", domain.ErrValidation, key)
		}
		if minutes < 1 {
			return nil, fmt.Errorf("%w: interval for attempt %d must be positive (got %d)", domain.ErrValidation, attempt, minutes)
		}
		table[attempt] = minutes
	}

	return table, nil
}

// Get returns the configured minutes for an attempt number, or
// DefaultWaitMinutes when absent.
func (t IntervalTable) Get(attempt int) int {
	if minutes, ok := t[attempt]; ok {
		return minutes
	}
	return DefaultWaitMinutes
}

// Wait returns Get as a duration.
func (t IntervalTable) Wait(attempt int) time.Duration {
	return time.Duration(t.Get(attempt)) * time.Minute
}

// CanonicalJSON renders the table in the canonical double-quoted form with
// attempt numbers in ascending order. Saving always normalizes to this.
func (t IntervalTable) CanonicalJSON() string {
	attempts := make([]int, 0, len(t))
	for attempt := range t {
		attempts = append(attempts, attempt)
	}
	sort.Ints(attempts)

	var b strings.Builder
	b.WriteByte('{')
	for i, attempt := range attempts {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %d", strconv.Itoa(attempt), t[attempt])
	}
	b.WriteByte('}')
	return b.String()
}
