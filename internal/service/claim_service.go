package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kursadbilgin/call-assistant/internal/domain"
	"github.com/kursadbilgin/call-assistant/internal/repository"
	"github.com/kursadbilgin/call-assistant/internal/schedule"
	"go.uber.org/zap"
)

// ClaimService owns the claim lifecycle. A claim always starts with a fresh
// tracking reminder one hour after the connection time.
type ClaimService struct {
	claims    repository.ClaimRepository
	reminders repository.ReminderRepository
	engine    *schedule.Engine
	loc       *time.Location
	logger    *zap.Logger
}

// ClaimView is a claim formatted for display.
type ClaimView struct {
	ID                 string
	Reference          string
	Phone              string
	CRM                string
	ConnectionDatetime string
	ReminderID         *string
	Status             domain.ClaimStatus
	Completed          bool
}

// CreateClaimInput carries the fields of a new tracked claim.
type CreateClaimInput struct {
	Reference          string
	Phone              string
	CRM                string
	ConnectionDatetime string
}

func NewClaimService(
	claims repository.ClaimRepository,
	reminders repository.ReminderRepository,
	engine *schedule.Engine,
	loc *time.Location,
	logger *zap.Logger,
) (*ClaimService, error) {
	if claims == nil {
		return nil, fmt.Errorf("claim repository is required")
	}
	if reminders == nil {
		return nil, fmt.Errorf("reminder repository is required")
	}
	if engine == nil {
		engine = schedule.NewEngine(nil, loc)
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ClaimService{
		claims:    claims,
		reminders: reminders,
		engine:    engine,
		loc:       loc,
		logger:    logger,
	}, nil
}

// List returns the user's claims with localized connection times.
func (s *ClaimService) List(ctx context.Context, userID string) ([]ClaimView, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	claims, err := s.claims.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}

	views := make([]ClaimView, 0, len(claims))
	for i := range claims {
		claim := claims[i]
		views = append(views, ClaimView{
			ID:                 claim.ID,
			Reference:          claim.Reference,
			Phone:              claim.Phone,
			CRM:                claim.CRM,
			ConnectionDatetime: claim.ConnectionDatetime.In(s.loc).Format(displayTimeLayout),
			ReminderID:         claim.ReminderID,
			Status:             claim.Status,
			Completed:          claim.Completed,
		})
	}
	return views, nil
}

// Create registers a claim and its linked tracking reminder. The reminder is
// due one hour after the connection time, at attempt 1.
func (s *ClaimService) Create(ctx context.Context, userID string, input CreateClaimInput) (*domain.Claim, *domain.Reminder, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	connection, err := schedule.ParseLocalDateTime(input.ConnectionDatetime, s.loc)
	if err != nil {
		return nil, nil, err
	}

	claim := &domain.Claim{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Reference:          input.Reference,
		Phone:              input.Phone,
		CRM:                input.CRM,
		ConnectionDatetime: connection,
		Status:             domain.ClaimStatusActive,
		Completed:          false,
	}
	if err := claim.Validate(); err != nil {
		return nil, nil, err
	}

	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, nil, fmt.Errorf("failed to create claim: %w", err)
	}

	reminder := &domain.Reminder{
		ID:            uuid.NewString(),
		UserID:        userID,
		Comment:       fmt.Sprintf("Claim: %s", claim.Reference),
		Phone:         claim.Phone,
		FirstAttempt:  s.engine.Now(),
		NextAttempt:   s.engine.LinkToClaim(connection),
		AttemptNumber: 1,
		Kind:          domain.KindTracking,
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, nil, fmt.Errorf("failed to create linked reminder: %w", err)
	}

	if err := s.claims.SetReminder(ctx, userID, claim.ID, &reminder.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to link reminder to claim: %w", err)
	}
	claim.ReminderID = &reminder.ID

	s.logger.Info("claim created",
		zap.String("claimId", claim.ID),
		zap.String("reminderId", reminder.ID),
		zap.Time("nextAttempt", reminder.NextAttempt),
	)

	return claim, reminder, nil
}

// Delete removes claims together with their linked reminders. This is the
// abandon path: the claim disappears without ever completing.
func (s *ClaimService) Delete(ctx context.Context, userID string, ids []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: no claim ids given", domain.ErrValidation)
	}

	reminderIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		claim, err := s.claims.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if claim.ReminderID != nil {
			reminderIDs = append(reminderIDs, *claim.ReminderID)
		}
	}

	if err := s.reminders.Delete(ctx, userID, reminderIDs); err != nil {
		return fmt.Errorf("failed to delete linked reminders: %w", err)
	}
	if err := s.claims.Delete(ctx, userID, ids); err != nil {
		return fmt.Errorf("failed to delete claims: %w", err)
	}
	return nil
}
