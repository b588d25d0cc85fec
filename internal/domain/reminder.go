package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Kind represents how a reminder entered the schedule.
type Kind string

const (
	KindNoAnswer Kind = "NO_ANSWER"
	KindRetry    Kind = "RETRY"
	KindTracking Kind = "TRACKING"
)

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	switch k {
	case KindNoAnswer, KindRetry, KindTracking:
		return true
	}
	return false
}

func ParseKindFromString(s string) (Kind, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	k := Kind(normalized)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: invalid kind %q", ErrValidation, s)
	}
	return k, nil
}

const MaxCommentLength = 255

// Reminder is a scheduled follow-up call attempt. NextAttempt is always
// minute-aligned; FirstAttempt never changes after creation.
type Reminder struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	UserID        string `gorm:"type:uuid;not null;index"`
	Comment       string `gorm:"type:varchar(255);not null"`
	Phone         string `gorm:"type:varchar(50);not null"`
	FirstAttempt  time.Time
	NextAttempt   time.Time `gorm:"not null;index"`
	AttemptNumber int       `gorm:"not null;default:1"`
	Kind          Kind      `gorm:"type:varchar(20);not null"`
	NotifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.Comment) == "" {
		return fmt.Errorf("%w: comment is required", ErrValidation)
	}
	if len([]rune(r.Comment)) > MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, MaxCommentLength)
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: invalid kind %q", ErrValidation, r.Kind)
	}
	if r.AttemptNumber < 1 {
		return fmt.Errorf("%w: attempt number must be positive", ErrValidation)
	}
	return nil
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone reduces a phone-like string to the canonical 11-digit form
// starting with 8. Ten digits get a leading 8 prepended; a leading 7 on
// eleven digits is rewritten to 8.
func NormalizePhone(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(raw, "")
	switch {
	case len(digits) == 10:
		return "8" + digits, nil
	case len(digits) == 11 && digits[0] == '7':
		return "8" + digits[1:], nil
	case len(digits) == 11 && digits[0] == '8':
		return digits, nil
	default:
		return "", fmt.Errorf("%w: phone must contain 10 or 11 digits (got %d)", ErrValidation, len(digits))
	}
}
