package schedule

import (
	"testing"
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
)

func TestGenerateWorkScheduleFiveTwo(t *testing.T) {
	t.Parallel()

	// January 2024 starts on a Monday.
	got := GenerateWorkSchedule(2024, time.January, domain.PolicyFiveTwo, nil)
	if len(got) != 31 {
		t.Fatalf("schedule length = %d, want 31", len(got))
	}

	for day := 1; day <= 5; day++ {
		if !got[day] {
			t.Fatalf("day %d should be working (Mon-Fri)", day)
		}
	}
	if got[6] || got[7] {
		t.Fatalf("days 6 and 7 should be off (weekend), got %v %v", got[6], got[7])
	}
	if !got[8] {
		t.Fatal("day 8 should be working (Monday)")
	}
}

func TestGenerateWorkScheduleTwoTwo(t *testing.T) {
	t.Parallel()

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := GenerateWorkSchedule(2024, time.January, domain.PolicyTwoTwo, &first)

	expected := map[int]bool{1: true, 2: true, 3: false, 4: false, 5: true, 6: true, 7: false, 8: false}
	for day, want := range expected {
		if got[day] != want {
			t.Fatalf("day %d working = %v, want %v", day, got[day], want)
		}
	}
}

func TestGenerateWorkScheduleTwoTwoBeforeFirstWorkDate(t *testing.T) {
	t.Parallel()

	// Cycle anchored mid-month: earlier days use negative offsets and the
	// non-negative modulus keeps them on the correct phase.
	first := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	got := GenerateWorkSchedule(2024, time.January, domain.PolicyTwoTwo, &first)

	expected := map[int]bool{1: true, 2: true, 3: false, 4: false, 5: true, 6: true}
	for day, want := range expected {
		if got[day] != want {
			t.Fatalf("day %d working = %v, want %v", day, got[day], want)
		}
	}
}

func TestGenerateWorkScheduleTwoTwoDefaultsToFirstOfMonth(t *testing.T) {
	t.Parallel()

	got := GenerateWorkSchedule(2024, time.March, domain.PolicyTwoTwo, nil)
	expected := map[int]bool{1: true, 2: true, 3: false, 4: false, 5: true}
	for day, want := range expected {
		if got[day] != want {
			t.Fatalf("day %d working = %v, want %v", day, got[day], want)
		}
	}
}

func TestGenerateWorkScheduleIndividual(t *testing.T) {
	t.Parallel()

	got := GenerateWorkSchedule(2024, time.February, domain.PolicyIndividual, nil)
	if len(got) != 29 {
		t.Fatalf("schedule length = %d, want 29 (leap year)", len(got))
	}
	for day, working := range got {
		if !working {
			t.Fatalf("day %d should be working under individual policy", day)
		}
	}
}
