package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/call-assistant/internal/domain"
	"github.com/kursadbilgin/call-assistant/internal/service"
	"github.com/kursadbilgin/call-assistant/internal/transport"
)

type PlannerService interface {
	Month(ctx context.Context, userID string, year int, month time.Month) (*service.MonthView, error)
	AddTask(ctx context.Context, userID, date, text string) (*domain.DailyTask, error)
	ToggleTask(ctx context.Context, userID, id string) (*domain.DailyTask, error)
	DeleteTask(ctx context.Context, userID, id string) error
	Note(ctx context.Context, userID string) (*domain.Note, error)
	SaveNote(ctx context.Context, userID, content string) (*domain.Note, error)
	Settings(ctx context.Context, userID string) (*service.SettingsView, error)
	SaveSettings(ctx context.Context, userID string, input service.SaveSettingsInput) (*service.SettingsView, error)
	ResetSettings(ctx context.Context, userID string) (*service.SettingsView, error)
}

type PlannerHandler struct {
	service PlannerService
}

func NewPlannerHandler(service PlannerService) (*PlannerHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("planner service is required")
	}
	return &PlannerHandler{service: service}, nil
}

func RegisterPlannerRoutes(router fiber.Router, service PlannerService) error {
	h, err := NewPlannerHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/calendar/:year/:month", h.GetMonth)
	v1.Post("/tasks", h.AddTask)
	v1.Post("/tasks/:id/toggle", h.ToggleTask)
	v1.Delete("/tasks/:id", h.DeleteTask)
	v1.Get("/note", h.GetNote)
	v1.Put("/note", h.SaveNote)
	v1.Get("/settings", h.GetSettings)
	v1.Put("/settings", h.SaveSettings)
	v1.Post("/settings/reset", h.ResetSettings)

	return nil
}

type addTaskRequest struct {
	Date string `json:"date"`
	Task string `json:"task"`
}

type saveNoteRequest struct {
	Content string `json:"content"`
}

type saveSettingsRequest struct {
	SchedulePolicy *string `json:"schedulePolicy"`
	FirstWorkDate  *string `json:"firstWorkDate"`
	Intervals      *string `json:"intervals"`
	SoundEnabled   *bool   `json:"soundEnabled"`
	Volume         *int    `json:"volume"`
	DarkTheme      *bool   `json:"darkTheme"`
	ColumnWidths   *string `json:"columnWidths"`
}

type taskResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

type monthResponse struct {
	WorkSchedule map[int]bool               `json:"workSchedule"`
	Tasks        map[int][]service.TaskView `json:"tasks"`
}

type settingsResponse struct {
	SchedulePolicy string      `json:"schedulePolicy"`
	FirstWorkDate  *string     `json:"firstWorkDate,omitempty"`
	Intervals      map[int]int `json:"intervals"`
	SoundEnabled   bool        `json:"soundEnabled"`
	Volume         int         `json:"volume"`
	DarkTheme      bool        `json:"darkTheme"`
	ColumnWidths   string      `json:"columnWidths"`
}

func (h *PlannerHandler) GetMonth(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid year")
	}
	month, err := c.ParamsInt("month")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid month")
	}

	view, err := h.service.Month(c.Context(), transport.UserID(c), year, time.Month(month))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(monthResponse{
		WorkSchedule: view.WorkSchedule,
		Tasks:        view.Tasks,
	})
}

func (h *PlannerHandler) AddTask(c *fiber.Ctx) error {
	var req addTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	task, err := h.service.AddTask(c.Context(), transport.UserID(c), strings.TrimSpace(req.Date), strings.TrimSpace(req.Task))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(task))
}

func (h *PlannerHandler) ToggleTask(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	task, err := h.service.ToggleTask(c.Context(), transport.UserID(c), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskResponse(task))
}

func (h *PlannerHandler) DeleteTask(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if err := h.service.DeleteTask(c.Context(), transport.UserID(c), id); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"taskId":  id,
		"deleted": true,
	})
}

func (h *PlannerHandler) GetNote(c *fiber.Ctx) error {
	note, err := h.service.Note(c.Context(), transport.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"content": note.Content,
	})
}

func (h *PlannerHandler) SaveNote(c *fiber.Ctx) error {
	var req saveNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	note, err := h.service.SaveNote(c.Context(), transport.UserID(c), req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"content": note.Content,
	})
}

func (h *PlannerHandler) GetSettings(c *fiber.Ctx) error {
	view, err := h.service.Settings(c.Context(), transport.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toSettingsResponse(view))
}

func (h *PlannerHandler) SaveSettings(c *fiber.Ctx) error {
	var req saveSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	view, err := h.service.SaveSettings(c.Context(), transport.UserID(c), service.SaveSettingsInput{
		SchedulePolicy: req.SchedulePolicy,
		FirstWorkDate:  req.FirstWorkDate,
		Intervals:      req.Intervals,
		SoundEnabled:   req.SoundEnabled,
		Volume:         req.Volume,
		DarkTheme:      req.DarkTheme,
		ColumnWidths:   req.ColumnWidths,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toSettingsResponse(view))
}

func (h *PlannerHandler) ResetSettings(c *fiber.Ctx) error {
	view, err := h.service.ResetSettings(c.Context(), transport.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toSettingsResponse(view))
}

func toTaskResponse(task *domain.DailyTask) taskResponse {
	if task == nil {
		return taskResponse{}
	}

	return taskResponse{
		ID:        task.ID,
		Date:      task.Date.Format("2006-01-02"),
		Task:      task.Task,
		Completed: task.Completed,
	}
}

func toSettingsResponse(view *service.SettingsView) settingsResponse {
	if view == nil {
		return settingsResponse{}
	}

	return settingsResponse{
		SchedulePolicy: view.SchedulePolicy.String(),
		FirstWorkDate:  view.FirstWorkDate,
		Intervals:      view.Intervals,
		SoundEnabled:   view.SoundEnabled,
		Volume:         view.Volume,
		DarkTheme:      view.DarkTheme,
		ColumnWidths:   view.ColumnWidths,
	}
}
