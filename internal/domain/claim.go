package domain

import (
	"fmt"
	"strings"
	"time"
)

// ClaimStatus represents the lifecycle state of a tracked claim.
type ClaimStatus string

const (
	ClaimStatusActive    ClaimStatus = "ACTIVE"
	ClaimStatusCompleted ClaimStatus = "COMPLETED"
)

func (s ClaimStatus) String() string { return string(s) }

func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusActive, ClaimStatusCompleted:
		return true
	}
	return false
}

// Claim is an external service request tracked through to completion.
// It references at most one live reminder; deleting the reminder only
// clears the reference, deleting the claim removes the reminder too.
type Claim struct {
	ID                 string `gorm:"type:uuid;primaryKey"`
	UserID             string `gorm:"type:uuid;not null;index"`
	Reference          string `gorm:"type:varchar(255);not null"`
	Phone              string `gorm:"type:varchar(50);not null"`
	CRM                string `gorm:"type:varchar(100);not null"`
	ConnectionDatetime time.Time
	ReminderID         *string     `gorm:"type:uuid"`
	Status             ClaimStatus `gorm:"type:varchar(50);not null"`
	Completed          bool        `gorm:"not null;default:false"`
	CreatedAt          time.Time
}

func (c *Claim) Validate() error {
	if strings.TrimSpace(c.Reference) == "" {
		return fmt.Errorf("%w: claim reference is required", ErrValidation)
	}
	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if strings.TrimSpace(c.CRM) == "" {
		return fmt.Errorf("%w: crm reference is required", ErrValidation)
	}
	if c.ConnectionDatetime.IsZero() {
		return fmt.Errorf("%w: connection datetime is required", ErrValidation)
	}
	if !c.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, c.Status)
	}
	return nil
}
