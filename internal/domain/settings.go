package domain

import (
	"fmt"
	"strings"
	"time"
)

// SchedulePolicy selects how working days are generated for a month.
type SchedulePolicy string

const (
	PolicyFiveTwo    SchedulePolicy = "5/2"
	PolicyTwoTwo     SchedulePolicy = "2/2"
	PolicyIndividual SchedulePolicy = "individual"
)

func (p SchedulePolicy) String() string { return string(p) }

func (p SchedulePolicy) IsValid() bool {
	switch p {
	case PolicyFiveTwo, PolicyTwoTwo, PolicyIndividual:
		return true
	}
	return false
}

func ParseSchedulePolicyFromString(s string) (SchedulePolicy, error) {
	p := SchedulePolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: invalid schedule policy %q", ErrValidation, s)
	}
	return p, nil
}

const (
	MinVolume = 0
	MaxVolume = 100
)

// UserSettings is the per-user configuration aggregate. Intervals holds the
// retry interval table as raw JSON; the schedule package owns its parsing
// and repair rules.
type UserSettings struct {
	ID             string         `gorm:"type:uuid;primaryKey"`
	UserID         string         `gorm:"type:uuid;not null;uniqueIndex"`
	SchedulePolicy SchedulePolicy `gorm:"type:varchar(20);not null;default:'5/2'"`
	FirstWorkDate  *time.Time     `gorm:"type:date"`
	Intervals      string         `gorm:"type:text;not null"`
	SoundEnabled   bool           `gorm:"not null;default:true"`
	Volume         int            `gorm:"not null;default:100"`
	DarkTheme      bool           `gorm:"not null;default:false"`
	ColumnWidths   string         `gorm:"type:text;not null;default:'{}'"`
	UpdatedAt      time.Time
}

func (s *UserSettings) Validate() error {
	if !s.SchedulePolicy.IsValid() {
		return fmt.Errorf("%w: invalid schedule policy %q", ErrValidation, s.SchedulePolicy)
	}
	if s.Volume < MinVolume || s.Volume > MaxVolume {
		return fmt.Errorf("%w: volume must be between %d and %d (got %d)", ErrValidation, MinVolume, MaxVolume, s.Volume)
	}
	return nil
}
