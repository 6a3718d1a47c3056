package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CreateTicketRequest payload. Owner is never part of the payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Phone       string                `json:"phone"`
	Screenshots []string              `json:"screenshots"`
}

// UpdateTicketRequest carries the admin status patch.
type UpdateTicketRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketResponse is the full ticket view. Owner is nil when the owning user
// was deleted after the ticket was created.
type TicketResponse struct {
	ID          string                `json:"id"`
	OwnerID     string                `json:"owner_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	Phone       string                `json:"phone"`
	Screenshots []string              `json:"screenshots"`
	Owner       *domain.OwnerSnapshot `json:"owner"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// NewTicketResponse converts a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	screenshots := ticket.Screenshots
	if screenshots == nil {
		screenshots = []string{}
	}
	return TicketResponse{
		ID:          ticket.ID,
		OwnerID:     ticket.OwnerID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		Phone:       ticket.Phone,
		Screenshots: screenshots,
		Owner:       ticket.Owner,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}
