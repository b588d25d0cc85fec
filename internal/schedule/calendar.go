package schedule

import (
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
)

// twoTwoCycleDays is the length of the 2/2 shift cycle: two on, two off.
const twoTwoCycleDays = 4

// GenerateWorkSchedule returns a day-of-month to is-working-day map for the
// given month under the user's schedule policy.
//
// For the 2/2 policy the cycle runs continuously from firstWorkDate, which
// may fall in any month; days before it produce negative offsets and still
// land on the correct phase. When firstWorkDate is nil the 1st of the
// queried month is used.
func GenerateWorkSchedule(year int, month time.Month, policy domain.SchedulePolicy, firstWorkDate *time.Time) map[int]bool {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	workSchedule := make(map[int]bool, daysInMonth)

	switch policy {
	case domain.PolicyTwoTwo:
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		if firstWorkDate != nil {
			first = dateOnly(*firstWorkDate)
		}
		for day := 1; day <= daysInMonth; day++ {
			current := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			diffDays := int(current.Sub(first).Hours() / 24)
			phase := ((diffDays % twoTwoCycleDays) + twoTwoCycleDays) % twoTwoCycleDays
			workSchedule[day] = phase == 0 || phase == 1
		}

	case domain.PolicyIndividual:
		for day := 1; day <= daysInMonth; day++ {
			workSchedule[day] = true
		}

	default: // 5/2
		for day := 1; day <= daysInMonth; day++ {
			weekday := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
			workSchedule[day] = weekday != time.Saturday && weekday != time.Sunday
		}
	}

	return workSchedule
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
