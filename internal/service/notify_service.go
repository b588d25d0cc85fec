package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
	"github.com/kursadbilgin/call-assistant/internal/observability"
	"github.com/kursadbilgin/call-assistant/internal/repository"
	"github.com/kursadbilgin/call-assistant/internal/schedule"
	"github.com/kursadbilgin/call-assistant/internal/webhook"
	"go.uber.org/zap"
)

// NotificationService surfaces due reminders exactly once. Delivery is
// at-most-once: the conditional notified_at transition in the repository
// decides which concurrent poll wins, and a winner that loses the response
// is not redelivered.
type NotificationService struct {
	reminders repository.ReminderRepository
	mirror    *webhook.Mirror
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// NotificationView is a due reminder formatted for the notification popup:
// local wall-clock time only.
type NotificationView struct {
	ID          string
	Comment     string
	Phone       string
	NextAttempt string
	Kind        domain.Kind
}

func NewNotificationService(
	reminders repository.ReminderRepository,
	mirror *webhook.Mirror,
	loc *time.Location,
	now func() time.Time,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*NotificationService, error) {
	if reminders == nil {
		return nil, fmt.Errorf("reminder repository is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NotificationService{
		reminders: reminders,
		mirror:    mirror,
		loc:       loc,
		now:       now,
		logger:    logger,
		metrics:   metrics,
	}, nil
}

// Poll returns the user's due, not-yet-notified reminders and marks each one
// notified before returning. A reminder that loses the conditional update to
// a concurrent poll is silently skipped.
func (s *NotificationService) Poll(ctx context.Context, userID string) ([]NotificationView, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reminders, err := s.reminders.ListUnnotified(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unnotified reminders: %w", err)
	}

	now := s.now()
	views := make([]NotificationView, 0, len(reminders))
	for i := range reminders {
		reminder := reminders[i]
		rounded := schedule.CeilToMinute(reminder.NextAttempt)
		if rounded.After(now) {
			continue
		}

		delivered, err := s.reminders.MarkNotified(ctx, userID, reminder.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to mark reminder notified: %w", err)
		}
		if !delivered {
			// Another session got there first.
			continue
		}

		view := NotificationView{
			ID:          reminder.ID,
			Comment:     reminder.Comment,
			Phone:       reminder.Phone,
			NextAttempt: rounded.In(s.loc).Format("15:04"),
			Kind:        reminder.Kind,
		}
		views = append(views, view)
		s.metrics.IncNotificationDelivered(reminder.Kind.String())
		s.forwardToMirror(ctx, view)
	}

	return views, nil
}

func (s *NotificationService) forwardToMirror(ctx context.Context, view NotificationView) {
	if s.mirror == nil {
		return
	}

	err := s.mirror.Forward(ctx, webhook.Event{
		ReminderID:  view.ID,
		Comment:     view.Comment,
		Phone:       view.Phone,
		NextAttempt: view.NextAttempt,
		Kind:        view.Kind.String(),
	})
	if err != nil {
		s.logger.Warn("notification mirror delivery failed",
			zap.String("reminderId", view.ID),
			zap.Bool("transient", webhook.IsTransient(err)),
			zap.Error(err),
		)
	}
}
