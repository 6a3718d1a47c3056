package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// UsersHandler exposes the admin user directory, plus self reads.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// List handles GET /users (admin only via route guard, paginated).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	page := parseQueryInt(c.Query("page"), 1)
	limit := parseQueryInt(c.Query("limit"), 10)

	result, err := h.service.List(c.Context(), page, limit)
	if err != nil {
		return err
	}

	users := make([]dto.UserResponse, 0, len(result.Items))
	for i := range result.Items {
		users = append(users, dto.NewUserResponse(&result.Items[i]))
	}
	return c.JSON(dto.UserListResponse{
		Users: users,
		Pagination: dto.Pagination{
			Page:        result.Page,
			Limit:       result.Limit,
			Total:       result.Total,
			TotalPages:  result.TotalPages,
			HasNextPage: result.HasNextPage,
			HasPrevPage: result.HasPrevPage,
		},
	})
}

// Get handles GET /users/:id: admins read anyone, users only themselves.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id := c.Params("id")
	if !principal.IsAdmin() && principal.UserID != id {
		return apperrors.NewForbidden("cannot read another user")
	}

	user, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Update handles PATCH /users/:id (admin only via route guard). Any password
// value in the payload is dropped before it reaches the directory.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.Update(c.Context(), c.Params("id"), service.UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Delete handles DELETE /users/:id (admin only via route guard).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	err := h.service.Delete(c.Context(), c.Params("id"), events.Actor{
		UserID: principal.UserID,
		Role:   principal.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}, "message": "user deleted"})
}

func parseQueryInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
