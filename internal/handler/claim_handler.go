package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/call-assistant/internal/domain"
	"github.com/kursadbilgin/call-assistant/internal/service"
	"github.com/kursadbilgin/call-assistant/internal/transport"
)

type ClaimService interface {
	List(ctx context.Context, userID string) ([]service.ClaimView, error)
	Create(ctx context.Context, userID string, input service.CreateClaimInput) (*domain.Claim, *domain.Reminder, error)
	Delete(ctx context.Context, userID string, ids []string) error
}

type ClaimHandler struct {
	service ClaimService
}

func NewClaimHandler(service ClaimService) (*ClaimHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("claim service is required")
	}
	return &ClaimHandler{service: service}, nil
}

func RegisterClaimRoutes(router fiber.Router, service ClaimService) error {
	h, err := NewClaimHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/claims", h.ListClaims)
	v1.Post("/claims", h.CreateClaim)
	v1.Delete("/claims", h.DeleteClaims)

	return nil
}

type createClaimRequest struct {
	Reference          string `json:"reference"`
	Phone              string `json:"phone"`
	CRM                string `json:"crm"`
	ConnectionDatetime string `json:"connectionDatetime"`
}

type deleteClaimsRequest struct {
	IDs []string `json:"ids"`
}

type claimViewResponse struct {
	ID                 string  `json:"id"`
	Reference          string  `json:"reference"`
	Phone              string  `json:"phone"`
	CRM                string  `json:"crm"`
	ConnectionDatetime string  `json:"connectionDatetime"`
	ReminderID         *string `json:"reminderId,omitempty"`
	Status             string  `json:"status"`
	Completed          bool    `json:"completed"`
}

type createClaimResponse struct {
	ClaimID    string           `json:"claimId"`
	Reference  string           `json:"reference"`
	Status     string           `json:"status"`
	ReminderID string           `json:"reminderId"`
	Reminder   reminderResponse `json:"reminder"`
}

func (h *ClaimHandler) ListClaims(c *fiber.Ctx) error {
	views, err := h.service.List(c.Context(), transport.UserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	responses := make([]claimViewResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, claimViewResponse{
			ID:                 view.ID,
			Reference:          view.Reference,
			Phone:              view.Phone,
			CRM:                view.CRM,
			ConnectionDatetime: view.ConnectionDatetime,
			ReminderID:         view.ReminderID,
			Status:             view.Status.String(),
			Completed:          view.Completed,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": responses,
	})
}

func (h *ClaimHandler) CreateClaim(c *fiber.Ctx) error {
	var req createClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	claim, reminder, err := h.service.Create(c.Context(), transport.UserID(c), service.CreateClaimInput{
		Reference:          strings.TrimSpace(req.Reference),
		Phone:              strings.TrimSpace(req.Phone),
		CRM:                strings.TrimSpace(req.CRM),
		ConnectionDatetime: strings.TrimSpace(req.ConnectionDatetime),
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(createClaimResponse{
		ClaimID:    claim.ID,
		Reference:  claim.Reference,
		Status:     claim.Status.String(),
		ReminderID: reminder.ID,
		Reminder:   toReminderResponse(reminder),
	})
}

func (h *ClaimHandler) DeleteClaims(c *fiber.Ctx) error {
	var req deleteClaimsRequest
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
