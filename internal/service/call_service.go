package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kursadbilgin/call-assistant/internal/domain"
	"github.com/kursadbilgin/call-assistant/internal/observability"
	"github.com/kursadbilgin/call-assistant/internal/repository"
	"github.com/kursadbilgin/call-assistant/internal/schedule"
	"go.uber.org/zap"
)

const displayTimeLayout = "2006-01-02 15:04"

// CallService owns the reminder lifecycle: creation, retries, manual
// rescheduling, postponement, completion and deletion.
type CallService struct {
	reminders repository.ReminderRepository
	claims    repository.ClaimRepository
	settings  repository.SettingsRepository
	engine    *schedule.Engine
	loc       *time.Location
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// CallView is a reminder annotated for display: localized timestamps,
// urgency tier and human distance string.
type CallView struct {
	ID            string
	Comment       string
	Phone         string
	FirstAttempt  string
	NextAttempt   string
	AttemptNumber int
	Kind          domain.Kind
	TimeUntil     string
	Urgency       schedule.Tier
}

// CreateCallInput carries the fields of a manual call registration.
type CreateCallInput struct {
	Comment     string
	Phone       string
	Kind        string
	NextAttempt string
}

func NewCallService(
	reminders repository.ReminderRepository,
	claims repository.ClaimRepository,
	settings repository.SettingsRepository,
	engine *schedule.Engine,
	loc *time.Location,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*CallService, error) {
	if reminders == nil {
		return nil, fmt.Errorf("reminder repository is required")
	}
	if claims == nil {
		return nil, fmt.Errorf("claim repository is required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings repository is required")
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

	return &CallService{
		reminders: reminders,
		claims:    claims,
		settings:  settings,
		engine:    engine,
		loc:       loc,
		logger:    logger,
		metrics:   metrics,
	}, nil
}

// List returns the user's reminders annotated for display. When date is
// non-empty only reminders due on that local calendar day are returned.
func (s *CallService) List(ctx context.Context, userID, date string) ([]CallView, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var from, to *time.Time
	if date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date filter %q", domain.ErrValidation, date)
		}
		next := day.AddDate(0, 0, 1)
		from, to = &day, &next
	}

	reminders, err := s.reminders.List(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	now := s.engine.Now()
	views := make([]CallView, 0, len(reminders))
	for i := range reminders {
		reminder := reminders[i]
		rounded := schedule.CeilToMinute(reminder.NextAttempt)
		views = append(views, CallView{
			ID:            reminder.ID,
			Comment:       reminder.Comment,
			Phone:         reminder.Phone,
			FirstAttempt:  reminder.FirstAttempt.In(s.loc).Format(displayTimeLayout),
			NextAttempt:   rounded.In(s.loc).Format(displayTimeLayout),
			AttemptNumber: reminder.AttemptNumber,
			Kind:          reminder.Kind,
			TimeUntil:     schedule.TimeUntil(rounded, now),
			Urgency:       schedule.Classify(rounded, now),
		})
	}

	return views, nil
}

// Create registers a new reminder at attempt 1. No-answer calls (and any
// request without an explicit time) are scheduled from the user's interval
// table; other kinds accept an operator-supplied due time.
func (s *CallService) Create(ctx context.Context, userID string, input CreateCallInput) (*domain.Reminder, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	kind := domain.KindNoAnswer
	if input.Kind != "" {
		parsed, err := domain.ParseKindFromString(input.Kind)
		if err != nil {
			return nil, err
		}
		kind = parsed
	}

	now := s.engine.Now()
	var nextAttempt time.Time
	if kind == domain.KindNoAnswer || input.NextAttempt == "" {
		table, err := s.intervalTable(ctx, userID)
		if err != nil {
			return nil, err
		}
		nextAttempt = s.engine.InitialSchedule(table)
	} else {
		parsed, err := s.engine.Reschedule(input.NextAttempt)
		if err != nil {
			return nil, err
		}
		nextAttempt = parsed
	}

	reminder := &domain.Reminder{
		ID:            uuid.NewString(),
		UserID:        userID,
		Comment:       input.Comment,
		Phone:         input.Phone,
		FirstAttempt:  now,
		NextAttempt:   nextAttempt,
		AttemptNumber: 1,
		Kind:          kind,
	}
	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	s.logger.Info("reminder created",
		zap.String("reminderId", reminder.ID),
		zap.String("kind", reminder.Kind.String()),
		zap.Time("nextAttempt", reminder.NextAttempt),
	)

	return reminder, nil
}

// Retry records a failed contact attempt: the attempt counter advances by
// one, the next due time comes from the interval table for the new attempt,
// and the reminder kind becomes retry. Lost races surface as ErrConflict so
// concurrent retries can never skip or repeat an attempt number.
func (s *CallService) Retry(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reminder, err := s.reminders.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	table, err := s.intervalTable(ctx, userID)
	if err != nil {
		return nil, err
	}

	newAttempt, nextAttempt := s.engine.Advance(reminder.AttemptNumber, table)

	updated, err := s.reminders.AdvanceAttempt(ctx, userID, id, reminder.AttemptNumber, nextAttempt, domain.KindRetry)
	if err != nil {
		return nil, fmt.Errorf("failed to advance reminder: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: reminder was advanced by another request", domain.ErrConflict)
	}

	s.metrics.IncRetryScheduled(reminder.Kind.String())

	reminder.AttemptNumber = newAttempt
	reminder.NextAttempt = nextAttempt
	reminder.Kind = domain.KindRetry
	return reminder, nil
}

// Reschedule sets an operator-supplied due time. The attempt counter is
// untouched.
func (s *CallService) Reschedule(ctx context.Context, userID, id, rawTime string) (time.Time, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	nextAttempt, err := s.engine.Reschedule(rawTime)
	if err != nil {
		return time.Time{}, err
	}

	if err := s.reminders.UpdateNextAttempt(ctx, userID, id, nextAttempt); err != nil {
		return time.Time{}, err
	}
	return nextAttempt, nil
}

// Postpone bumps the due time by ten minutes from its current rounded value.
func (s *CallService) Postpone(ctx context.Context, userID, id string) (time.Time, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reminder, err := s.reminders.GetByID(ctx, userID, id)
	if err != nil {
		return time.Time{}, err
	}

	nextAttempt := s.engine.Postpone(reminder.NextAttempt)
	if err := s.reminders.UpdateNextAttempt(ctx, userID, id, nextAttempt); err != nil {
		return time.Time{}, err
	}

	s.metrics.IncReminderPostponed()

	return nextAttempt, nil
}

// UpdateComment replaces the reminder label.
func (s *CallService) UpdateComment(ctx context.Context, userID, id, comment string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if comment == "" {
		return fmt.Errorf("%w: comment is required", domain.ErrValidation)
	}
	return s.reminders.UpdateComment(ctx, userID, id, comment)
}

// UpdatePhone normalizes and replaces the contact number.
func (s *CallService) UpdatePhone(ctx context.Context, userID, id, phone string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	normalized, err := domain.NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	if err := s.reminders.UpdatePhone(ctx, userID, id, normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// Complete records a successful contact: the linked claim, if any, is marked
// completed and detached, then the reminder is deleted.
func (s *CallService) Complete(ctx context.Context, userID, id string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := s.reminders.GetByID(ctx, userID, id); err != nil {
		return err
	}

	claim, err := s.claims.GetByReminderID(ctx, userID, id)
	switch {
	case err == nil:
		if err := s.claims.MarkCompleted(ctx, userID, claim.ID); err != nil {
			return fmt.Errorf("failed to complete claim: %w", err)
		}
	case errors.Is(err, domain.ErrNotFound):
		// Plain call without a claim.
	default:
		return fmt.Errorf("failed to look up linked claim: %w", err)
	}

	if err := s.reminders.Delete(ctx, userID, []string{id}); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	s.logger.Info("call completed", zap.String("reminderId", id))
	return nil
}

// Delete removes reminders. Claims referencing them keep existing with the
// reference cleared; the cascade only runs the other way.
func (s *CallService) Delete(ctx context.Context, userID string, ids []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: no reminder ids given", domain.ErrValidation)
	}

	if err := s.claims.ClearReminderRefs(ctx, userID, ids); err != nil {
		return fmt.Errorf("failed to detach claims: %w", err)
	}
	if err := s.reminders.Delete(ctx, userID, ids); err != nil {
		return fmt.Errorf("failed to delete reminders: %w", err)
	}
	return nil
}

// ClearAll wipes the user's reminders and claims.
func (s *CallService) ClearAll(ctx context.Context, userID string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := s.reminders.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}
	if err := s.claims.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear claims: %w", err)
	}
	return nil
}

func (s *CallService) intervalTable(ctx context.Context, userID string) (schedule.IntervalTable, error) {
	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}
	// Unrecoverable tables fall back to defaults instead of failing the call.
	return schedule.IntervalTableWithDefaults(settings.Intervals), nil
}
