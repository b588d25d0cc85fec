package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/call-assistant/internal/ratelimit"
	"github.com/kursadbilgin/call-assistant/internal/service"
	"github.com/kursadbilgin/call-assistant/internal/transport"
)

type NotificationService interface {
	Poll(ctx context.Context, userID string) ([]service.NotificationView, error)
}

type NotificationHandler struct {
	service NotificationService
	limiter ratelimit.PollLimiter
}

// NewNotificationHandler wires the poll endpoint. The limiter is optional;
// without one every poll goes straight through.
func NewNotificationHandler(service NotificationService, limiter ratelimit.PollLimiter) (*NotificationHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("notification service is required")
	}
	return &NotificationHandler{service: service, limiter: limiter}, nil
}

func RegisterNotificationRoutes(router fiber.Router, service NotificationService, limiter ratelimit.PollLimiter) error {
	h, err := NewNotificationHandler(service, limiter)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/notifications/poll", h.Poll)

	return nil
}

type notificationViewResponse struct {
	ID          string `json:"id"`
	Comment     string `json:"comment"`
	Phone       string `json:"phone"`
	NextAttempt string `json:"nextAttempt"`
	Kind        string `json:"kind"`
}

// Poll returns reminders that just came due. Each reminder is handed out at
// most once across all of the user's sessions.
func (h *NotificationHandler) Poll(c *fiber.Ctx) error {
	userID := transport.UserID(c)

	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to check poll limit: %w", err)
		}
		if !allowed {
			return fiber.NewError(fiber.StatusTooManyRequests, "poll limit exceeded")
		}
	}

	views, err := h.service.Poll(c.Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}

	responses := make([]notificationViewResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, notificationViewResponse{
			ID:          view.ID,
			Comment:     view.Comment,
			Phone:       view.Phone,
			NextAttempt: view.NextAttempt,
			Kind:        view.Kind.String(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": responses,
	})
}
