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

// PlannerService covers the calendar tab: the work-schedule month view,
// daily tasks, the note scratchpad and the settings aggregate.
type PlannerService struct {
	tasks    repository.TaskRepository
	notes    repository.NoteRepository
	settings repository.SettingsRepository
	logger   *zap.Logger
}

// TaskView is a task item within a month view.
type TaskView struct {
	ID        string
	Task      string
	Completed bool
}

// MonthView combines the generated work schedule with tasks grouped by day
// of month.
type MonthView struct {
	WorkSchedule map[int]bool
	Tasks        map[int][]TaskView
}

// SettingsView is the settings aggregate with the interval table already
// parsed (falling back to defaults when unrecoverable).
type SettingsView struct {
	SchedulePolicy domain.SchedulePolicy
	FirstWorkDate  *string
	Intervals      schedule.IntervalTable
	SoundEnabled   bool
	Volume         int
	DarkTheme      bool
	ColumnWidths   string
}

// SaveSettingsInput carries a full settings update. Nil pointers keep the
// stored value.
type SaveSettingsInput struct {
	SchedulePolicy *string
	FirstWorkDate  *string
	Intervals      *string
	SoundEnabled   *bool
	Volume         *int
	DarkTheme      *bool
	ColumnWidths   *string
}

func NewPlannerService(
	tasks repository.TaskRepository,
	notes repository.NoteRepository,
	settings repository.SettingsRepository,
	logger *zap.Logger,
) (*PlannerService, error) {
	if tasks == nil {
		return nil, fmt.Errorf("task repository is required")
	}
	if notes == nil {
		return nil, fmt.Errorf("note repository is required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PlannerService{
		tasks:    tasks,
		notes:    notes,
		settings: settings,
		logger:   logger,
	}, nil
}

// Month builds the calendar view for a month under the user's schedule
// policy.
func (s *PlannerService) Month(ctx context.Context, userID string, year int, month time.Month) (*MonthView, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: invalid month %d", domain.ErrValidation, month)
	}

	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}

	workSchedule := schedule.GenerateWorkSchedule(year, month, settings.SchedulePolicy, settings.FirstWorkDate)

	tasks, err := s.tasks.ListByMonth(ctx, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	byDay := make(map[int][]TaskView)
	for i := range tasks {
		task := tasks[i]
		day := task.Date.Day()
		byDay[day] = append(byDay[day], TaskView{
			ID:        task.ID,
			Task:      task.Task,
			Completed: task.Completed,
		})
	}

	return &MonthView{WorkSchedule: workSchedule, Tasks: byDay}, nil
}

// AddTask pins a task to a calendar date.
func (s *PlannerService) AddTask(ctx context.Context, userID, date, text string) (*domain.DailyTask, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid task date %q", domain.ErrValidation, date)
	}

	task := &domain.DailyTask{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   day,
		Task:   text,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ToggleTask flips the completed flag.
func (s *PlannerService) ToggleTask(ctx context.Context, userID, id string) (*domain.DailyTask, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.tasks.Toggle(ctx, userID, id)
}

// DeleteTask removes a task.
func (s *PlannerService) DeleteTask(ctx context.Context, userID, id string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.tasks.Delete(ctx, userID, id)
}

// Note returns the user's scratchpad, creating an empty one on first read.
func (s *PlannerService) Note(ctx context.Context, userID string) (*domain.Note, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.notes.GetOrCreate(ctx, userID)
}

// SaveNote replaces the scratchpad content.
func (s *PlannerService) SaveNote(ctx context.Context, userID, content string) (*domain.Note, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.notes.Save(ctx, userID, content)
}

// Settings returns the settings aggregate for display.
func (s *PlannerService) Settings(ctx context.Context, userID string) (*SettingsView, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}
	return settingsView(settings), nil
}

// SaveSettings applies a partial update. Interval tables must parse on the
// write path; only the read path repairs silently.
func (s *PlannerService) SaveSettings(ctx context.Context, userID string, input SaveSettingsInput) (*SettingsView, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}

	if input.SchedulePolicy != nil {
		policy, err := domain.ParseSchedulePolicyFromString(*input.SchedulePolicy)
		if err != nil {
			return nil, err
		}
		settings.SchedulePolicy = policy
	}

	if input.FirstWorkDate != nil {
		if *input.FirstWorkDate == "" {
			settings.FirstWorkDate = nil
		} else {
			day, err := time.ParseInLocation("2006-01-02", *input.FirstWorkDate, time.UTC)
			if err != nil {
				settings.FirstWorkDate = nil
			} else {
				settings.FirstWorkDate = &day
			}
		}
	}

	if input.Intervals != nil {
		table, err := schedule.ParseIntervalTable(*input.Intervals)
		if err != nil {
			return nil, err
		}
		settings.Intervals = table.CanonicalJSON()
	}

	if input.SoundEnabled != nil {
		settings.SoundEnabled = *input.SoundEnabled
	}
	if input.Volume != nil {
		settings.Volume = *input.Volume
	}
	if input.DarkTheme != nil {
		settings.DarkTheme = *input.DarkTheme
	}
	if input.ColumnWidths != nil {
		settings.ColumnWidths = *input.ColumnWidths
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settingsView(settings), nil
}

// ResetSettings restores every setting to its default.
func (s *PlannerService) ResetSettings(ctx context.Context, userID string) (*SettingsView, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}

	defaults := repository.DefaultUserSettings(userID)
	defaults.ID = settings.ID

	if err := s.settings.Save(ctx, defaults); err != nil {
		return nil, fmt.Errorf("failed to reset settings: %w", err)
	}
	return settingsView(defaults), nil
}

func settingsView(settings *domain.UserSettings) *SettingsView {
	var firstWorkDate *string
	if settings.FirstWorkDate != nil {
		formatted := settings.FirstWorkDate.Format("2006-01-02")
		firstWorkDate = &formatted
	}

	return &SettingsView{
		SchedulePolicy: settings.SchedulePolicy,
		FirstWorkDate:  firstWorkDate,
		Intervals:      schedule.IntervalTableWithDefaults(settings.Intervals),
		SoundEnabled:   settings.SoundEnabled,
		Volume:         settings.Volume,
		DarkTheme:      settings.DarkTheme,
		ColumnWidths:   settings.ColumnWidths,
	}
}
