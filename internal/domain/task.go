package domain

import (
	"fmt"
	"strings"
	"time"
)

const MaxTaskLength = 255

// DailyTask is a to-do item pinned to a calendar date. It has no relation
// to reminders or claims.
type DailyTask struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	Date      time.Time `gorm:"type:date;not null;index"`
	Task      string    `gorm:"type:varchar(255);not null"`
	Completed bool      `gorm:"not null;default:false"`
}

func (t *DailyTask) Validate() error {
	if strings.TrimSpace(t.Task) == "" {
		return fmt.Errorf("%w: task text is required", ErrValidation)
	}
	if len([]rune(t.Task)) > MaxTaskLength {
		return fmt.Errorf("%w: task exceeds %d characters", ErrValidation, MaxTaskLength)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: task date is required", ErrValidation)
	}
	return nil
}

// Note is the single free-text scratchpad each user owns.
type Note struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex"`
	Content   string `gorm:"type:text;not null;default:''"`
	UpdatedAt time.Time
}
