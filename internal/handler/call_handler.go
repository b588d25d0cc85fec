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

type CallService interface {
	List(ctx context.Context, userID, date string) ([]service.CallView, error)
	Create(ctx context.Context, userID string, input service.CreateCallInput) (*domain.Reminder, error)
	Retry(ctx context.Context, userID, id string) (*domain.Reminder, error)
	Reschedule(ctx context.Context, userID, id, rawTime string) (time.Time, error)
	Postpone(ctx context.Context, userID, id string) (time.Time, error)
	UpdateComment(ctx context.Context, userID, id, comment string) error
	UpdatePhone(ctx context.Context, userID, id, phone string) (string, error)
	Complete(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID string, ids []string) error
	ClearAll(ctx context.Context, userID string) error
}

type CallHandler struct {
	service CallService
}

func NewCallHandler(service CallService) (*CallHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("call service is required")
	}
	return &CallHandler{service: service}, nil
}

func RegisterCallRoutes(router fiber.Router, service CallService) error {
	h, err := NewCallHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/calls", h.ListCalls)
	v1.Post("/calls", h.CreateCall)
	v1.Post("/calls/:id/retry", h.RetryCall)
	v1.Post("/calls/:id/reschedule", h.RescheduleCall)
	v1.Post("/calls/:id/postpone", h.PostponeCall)
	v1.Patch("/calls/:id/comment", h.UpdateComment)
	v1.Patch("/calls/:id/phone", h.UpdatePhone)
	v1.Post("/calls/:id/complete", h.CompleteCall)
	v1.Delete("/calls", h.DeleteCalls)
	v1.Delete("/calls/all", h.ClearCalls)

	return nil
}

type createCallRequest struct {
	Comment     string `json:"comment"`
	Phone       string `json:"phone"`
	Kind        string `json:"kind"`
	NextAttempt string `json:"nextAttempt"`
}

type rescheduleCallRequest struct {
	NextAttempt string `json:"nextAttempt"`
}

type updateCommentRequest struct {
	Comment string `json:"comment"`
}

type updatePhoneRequest struct {
	Phone string `json:"phone"`
}

type deleteCallsRequest struct {
	IDs []string `json:"ids"`
}

type callViewResponse struct {
	ID            string `json:"id"`
	Comment       string `json:"comment"`
	Phone         string `json:"phone"`
	FirstAttempt  string `json:"firstAttempt"`
	NextAttempt   string `json:"nextAttempt"`
	AttemptNumber int    `json:"attemptNumber"`
	Kind          string `json:"kind"`
	TimeUntil     string `json:"timeUntil"`
	Urgency       string `json:"urgency"`
}

type reminderResponse struct {
	ID            string    `json:"id"`
	Comment       string    `json:"comment"`
	Phone         string    `json:"phone"`
	FirstAttempt  time.Time `json:"firstAttempt"`
	NextAttempt   time.Time `json:"nextAttempt"`
	AttemptNumber int       `json:"attemptNumber"`
	Kind          string    `json:"kind"`
}

func (h *CallHandler) ListCalls(c *fiber.Ctx) error {
	views, err := h.service.List(c.Context(), transport.UserID(c), strings.TrimSpace(c.Query("date")))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": toCallViewResponses(views),
	})
}

func (h *CallHandler) CreateCall(c *fiber.Ctx) error {
	var req createCallRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	reminder, err := h.service.Create(c.Context(), transport.UserID(c), service.CreateCallInput{
		Comment:     strings.TrimSpace(req.Comment),
		Phone:       strings.TrimSpace(req.Phone),
		Kind:        strings.TrimSpace(req.Kind),
		NextAttempt: strings.TrimSpace(req.NextAttempt),
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(toReminderResponse(reminder))
}

func (h *CallHandler) RetryCall(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	reminder, err := h.service.Retry(c.Context(), transport.UserID(c), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toReminderResponse(reminder))
}

func (h *CallHandler) RescheduleCall(c *fiber.Ctx) error {
	var req rescheduleCallRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id := strings.TrimSpace(c.Params("id"))
	nextAttempt, err := h.service.Reschedule(c.Context(), transport.UserID(c), id, strings.TrimSpace(req.NextAttempt))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reminderId":  id,
		"nextAttempt": nextAttempt,
	})
}

func (h *CallHandler) PostponeCall(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	nextAttempt, err := h.service.Postpone(c.Context(), transport.UserID(c), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reminderId":  id,
		"nextAttempt": nextAttempt,
	})
}

func (h *CallHandler) UpdateComment(c *fiber.Ctx) error {
	var req updateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id := strings.TrimSpace(c.Params("id"))
	if err := h.service.UpdateComment(c.Context(), transport.UserID(c), id, strings.TrimSpace(req.Comment)); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reminderId": id,
		"comment":    strings.TrimSpace(req.Comment),
	})
}

func (h *CallHandler) UpdatePhone(c *fiber.Ctx) error {
	var req updatePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id := strings.TrimSpace(c.Params("id"))
	normalized, err := h.service.UpdatePhone(c.Context(), transport.UserID(c), id, strings.TrimSpace(req.Phone))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reminderId": id,
		"phone":      normalized,
	})
}

func (h *CallHandler) CompleteCall(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if err := h.service.Complete(c.Context(), transport.UserID(c), id); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reminderId": id,
		"completed":  true,
	})
}

func (h *CallHandler) DeleteCalls(c *fiber.Ctx) error {
	var req deleteCallsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Delete(c.Context(), transport.UserID(c), req.IDs); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deleted": len(req.IDs),
	})
}

func (h *CallHandler) ClearCalls(c *fiber.Ctx) error {
	if err := h.service.ClearAll(c.Context(), transport.UserID(c)); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"cleared": true,
	})
}

func toCallViewResponses(views []service.CallView) []callViewResponse {
	responses := make([]callViewResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, callViewResponse{
			ID:            view.ID,
			Comment:       view.Comment,
			Phone:         view.Phone,
			FirstAttempt:  view.FirstAttempt,
			NextAttempt:   view.NextAttempt,
			AttemptNumber: view.AttemptNumber,
			Kind:          view.Kind.String(),
			TimeUntil:     view.TimeUntil,
			Urgency:       view.Urgency.String(),
		})
	}
	return responses
}

func toReminderResponse(reminder *domain.Reminder) reminderResponse {
	if reminder == nil {
		return reminderResponse{}
	}

	return reminderResponse{
		ID:            reminder.ID,
		Comment:       reminder.Comment,
		Phone:         reminder.Phone,
		FirstAttempt:  reminder.FirstAttempt,
		NextAttempt:   reminder.NextAttempt,
		AttemptNumber: reminder.AttemptNumber,
		Kind:          reminder.Kind.String(),
	}
}
