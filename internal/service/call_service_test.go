package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
	"github.com/kursadbilgin/call-assistant/internal/repository"
	"github.com/kursadbilgin/call-assistant/internal/schedule"
)

const testUser = "11111111-1111-1111-1111-111111111111"

func testEngine(now time.Time) *schedule.Engine {
	return schedule.NewEngine(func() time.Time { return now }, time.UTC)
}

func defaultSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		getOrCreateFn: func(ctx context.Context, userID string) (*domain.UserSettings, error) {
			return repository.DefaultUserSettings(userID), nil
		},
	}
}

func TestCallService_CreateNoAnswerUsesIntervalTable(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 9, 0, 30, 0, time.UTC)
	var created *domain.Reminder
	reminders := &fakeReminderRepo{
		createFn: func(ctx context.Context, r *domain.Reminder) error {
			created = r
			return nil
		},
	}

	svc, err := NewCallService(reminders, &fakeClaimRepo{}, defaultSettingsRepo(), testEngine(now), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	reminder, err := svc.Create(context.Background(), testUser, CreateCallInput{
		Comment: "no answer",
		Phone:   "89991234567",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created == nil {
		t.Fatal("expected reminder to be persisted")
	}
	if reminder.Kind != domain.KindNoAnswer {
		t.Fatalf("kind = %s, want %s", reminder.Kind, domain.KindNoAnswer)
	}
	if reminder.AttemptNumber != 1 {
		t.Fatalf("attempt = %d, want 1", reminder.AttemptNumber)
	}

	// 09:00:30 plus the 20 minute first interval, rounded up to 09:21.
	want := time.Date(2026, time.March, 1, 9, 21, 0, 0, time.UTC)
	if !reminder.NextAttempt.Equal(want) {
		t.Fatalf("nextAttempt = %v, want %v", reminder.NextAttempt, want)
	}
}

func TestCallService_CreateWithExplicitTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	reminders := &fakeReminderRepo{
		createFn: func(ctx context.Context, r *domain.Reminder) error { return nil },
	}

	svc, err := NewCallService(reminders, &fakeClaimRepo{}, defaultSettingsRepo(), testEngine(now), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	reminder, err := svc.Create(context.Background(), testUser, CreateCallInput{
		Comment:     "agreed follow-up",
		Phone:       "89991234567",
		Kind:        "RETRY",
		NextAttempt: "2026-03-02T14:30",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC)
	if !reminder.NextAttempt.Equal(want) {
		t.Fatalf("nextAttempt = %v, want %v", reminder.NextAttempt, want)
	}
	if reminder.Kind != domain.KindRetry {
		t.Fatalf("kind = %s, want %s", reminder.Kind, domain.KindRetry)
	}
}

func TestCallService_RetryAdvancesAttempt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 10, 0, 30, 0, time.UTC)
	reminders := &fakeReminderRepo{
		getByIDFn: func(ctx context.Context, userID, id string) (*domain.Reminder, error) {
			return &domain.Reminder{
				ID:            id,
				UserID:        userID,
				AttemptNumber: 1,
				Kind:          domain.KindNoAnswer,
			}, nil
		},
		advanceAttemptFn: func(ctx context.Context, userID, id string, expectedAttempt int, nextAttempt time.Time, kind domain.Kind) (bool, error) {
			if expectedAttempt != 1 {
				t.Fatalf("expectedAttempt = %d, want 1", expectedAttempt)
			}
			if kind != domain.KindRetry {
				t.Fatalf("kind = %s, want %s", kind, domain.KindRetry)
			}
			return true, nil
		},
	}

	svc, err := NewCallService(reminders, &fakeClaimRepo{}, defaultSettingsRepo(), testEngine(now), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	reminder, err := svc.Retry(context.Background(), testUser, "r-1")
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}

	if reminder.AttemptNumber != 2 {
		t.Fatalf("attempt = %d, want 2", reminder.AttemptNumber)
	}

	// Attempt 2 waits 30 minutes: 10:00:30 + 30m rounded up to 10:31.
	want := time.Date(2026, time.March, 1, 10, 31, 0, 0, time.UTC)
	if !reminder.NextAttempt.Equal(want) {
		t.Fatalf("nextAttempt = %v, want %v", reminder.NextAttempt, want)
	}
}

func TestCallService_RetryConflict(t *testing.T) {
	t.Parallel()

	reminders := &fakeReminderRepo{
		getByIDFn: func(ctx context.Context, userID, id string) (*domain.Reminder, error) {
			return &domain.Reminder{ID: id, UserID: userID, AttemptNumber: 3}, nil
		},
		advanceAttemptFn: func(ctx context.Context, userID, id string, expectedAttempt int, nextAttempt time.Time, kind domain.Kind) (bool, error) {
			return false, nil
		},
	}

	svc, err := NewCallService(reminders, &fakeClaimRepo{}, defaultSettingsRepo(), testEngine(time.Now()), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	_, err = svc.Retry(context.Background(), testUser, "r-1")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
}

func TestCallService_PostponeCompounds(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	var saved time.Time
	reminders := &fakeReminderRepo{
		getByIDFn: func(ctx context.Context, userID, id string) (*domain.Reminder, error) {
			return &domain.Reminder{ID: id, UserID: userID, NextAttempt: current}, nil
		},
		updateNextAttemptFn: func(ctx context.Context, userID, id string, nextAttempt time.Time) error {
			saved = nextAttempt
			current = nextAttempt
			return nil
		},
	}

	svc, err := NewCallService(reminders, &fakeClaimRepo{}, defaultSettingsRepo(), testEngine(time.Now()), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	wants := []time.Time{
		time.Date(2026, time.March, 1, 10, 10, 0, 0, time.UTC),
		time.Date(2026, time.March, 1, 10, 20, 0, 0, time.UTC),
		time.Date(2026, time.March, 1, 10, 30, 0, 0, time.UTC),
	}
	for _, want := range wants {
		got, err := svc.Postpone(context.Background(), testUser, "r-1")
		if err != nil {
			t.Fatalf("Postpone() error = %v", err)
		}
		if !got.Equal(want) {
			t.Fatalf("nextAttempt = %v, want %v", got, want)
		}
		if !saved.Equal(want) {
			t.Fatalf("saved = %v, want %v", saved, want)
		}
	}
}

func TestCallService_CompleteWithLinkedClaim(t *testing.T) {
	t.Parallel()

	var completedClaim string
	var deletedReminders []string
	reminders := &fakeReminderRepo{
		getByIDFn: func(ctx context.Context, userID, id string) (*domain.Reminder, error) {
			return &domain.Reminder{ID: id, UserID: userID}, nil
		},
		deleteFn: func(ctx context.Context, userID string, ids []string) error {
			deletedReminders = ids
			return nil
		},
	}
	claims := &fakeClaimRepo{
		getByReminderIDFn: func(ctx context.Context, userID, reminderID string) (*domain.Claim, error) {
			return &domain.Claim{ID: "c-1", UserID: userID, ReminderID: &reminderID}, nil
		},
		markCompletedFn: func(ctx context.Context, userID, id string) error {
			completedClaim = id
			return nil
		},
	}

	svc, err := NewCallService(reminders, claims, defaultSettingsRepo(), testEngine(time.Now()), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	if err := svc.Complete(context.Background(), testUser, "r-1"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if completedClaim != "c-1" {
		t.Fatalf("completed claim = %q, want c-1", completedClaim)
	}
	if len(deletedReminders) != 1 || deletedReminders[0] != "r-1" {
		t.Fatalf("deleted reminders = %v, want [r-1]", deletedReminders)
	}
}

func TestCallService_CompleteWithoutClaim(t *testing.T) {
	t.Parallel()

	reminders := &fakeReminderRepo{
		getByIDFn: func(ctx context.Context, userID, id string) (*domain.Reminder, error) {
			return &domain.Reminder{ID: id, UserID: userID}, nil
		},
		deleteFn: func(ctx context.Context, userID string, ids []string) error { return nil },
	}
	claims := &fakeClaimRepo{
		getByReminderIDFn: func(ctx context.Context, userID, reminderID string) (*domain.Claim, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc, err := NewCallService(reminders, claims, defaultSettingsRepo(), testEngine(time.Now()), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	if err := svc.Complete(context.Background(), testUser, "r-1"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
}

func TestCallService_DeleteDetachesClaims(t *testing.T) {
	t.Parallel()

	var clearedRefs []string
	var deleted []string
	reminders := &fakeReminderRepo{
		deleteFn: func(ctx context.Context, userID string, ids []string) error {
			deleted = ids
			return nil
		},
	}
	claims := &fakeClaimRepo{
		clearReminderRefsFn: func(ctx context.Context, userID string, reminderIDs []string) error {
			clearedRefs = reminderIDs
			return nil
		},
	}

	svc, err := NewCallService(reminders, claims, defaultSettingsRepo(), testEngine(time.Now()), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	if err := svc.Delete(context.Background(), testUser, []string{"r-1", "r-2"}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(clearedRefs) != 2 {
		t.Fatalf("cleared refs = %v, want 2 entries", clearedRefs)
	}
	if len(deleted) != 2 {
		t.Fatalf("deleted = %v, want 2 entries", deleted)
	}
}

func TestCallService_UpdatePhoneNormalizes(t *testing.T) {
	t.Parallel()

	var savedPhone string
	reminders := &fakeReminderRepo{
		updatePhoneFn: func(ctx context.Context, userID, id, phone string) error {
			savedPhone = phone
			return nil
		},
	}

	svc, err := NewCallService(reminders, &fakeClaimRepo{}, defaultSettingsRepo(), testEngine(time.Now()), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	normalized, err := svc.UpdatePhone(context.Background(), testUser, "r-1", "+7 (999) 123-45-67")
	if err != nil {
		t.Fatalf("UpdatePhone() error = %v", err)
	}

	if normalized != "89991234567" {
		t.Fatalf("normalized = %q, want 89991234567", normalized)
	}
	if savedPhone != normalized {
		t.Fatalf("saved = %q, want %q", savedPhone, normalized)
	}
}

func TestCallService_ListFiltersInvalidDate(t *testing.T) {
	t.Parallel()

	reminders := &fakeReminderRepo{
		listFn: func(ctx context.Context, userID string, from, to *time.Time) ([]domain.Reminder, error) {
			return nil, nil
		},
	}

	svc, err := NewCallService(reminders, &fakeClaimRepo{}, defaultSettingsRepo(), testEngine(time.Now()), time.UTC, nil, nil)
	if err != nil {
		t.Fatalf("NewCallService() error = %v", err)
	}

	_, err = svc.List(context.Background(), testUser, "01.03.2026")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}
