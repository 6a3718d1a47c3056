package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// MessagesHandler manages the contact-message endpoints.
type MessagesHandler struct {
	service *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// Submit handles POST /messages. Public, no authentication.
func (h *MessagesHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("name, email, subject, message required", nil)
	}

	msg, err := h.service.Submit(c.Context(), service.MessageSubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// List handles GET /messages (admin only via route guard).
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	msgs, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, dto.NewMessageResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update handles PATCH /messages/:id: status transition and/or notes.
func (h *MessagesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == nil && req.AdminNotes == nil {
		return apperrors.NewValidationError("status or admin_notes required", nil)
	}

	id := c.Params("id")
	var (
		msg *domain.Message
		err error
	)
	if req.Status != nil {
		msg, err = h.service.UpdateStatus(c.Context(), id, *req.Status, events.Actor{
			UserID: principal.UserID,
			Role:   principal.Role,
		})
		if err != nil {
			return err
		}
	}
	if req.AdminNotes != nil {
		msg, err = h.service.UpdateNotes(c.Context(), id, *req.AdminNotes)
		if err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// Delete handles DELETE /messages/:id.
func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}, "message": "message deleted"})
}

// Stats handles GET /messages/stats.
func (h *MessagesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
