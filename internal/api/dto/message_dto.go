package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// SubmitMessageRequest is the public contact-form payload.
type SubmitMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// UpdateMessageRequest patches status and/or admin notes.
type UpdateMessageRequest struct {
	Status     *domain.MessageStatus `json:"status"`
	AdminNotes *string               `json:"admin_notes"`
}

// MessageResponse is the admin inbox view.
type MessageResponse struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	Phone      string               `json:"phone"`
	Subject    string               `json:"subject"`
	Message    string               `json:"message"`
	Status     domain.MessageStatus `json:"status"`
	AdminNotes string               `json:"admin_notes"`
	RepliedAt  *time.Time           `json:"replied_at"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// NewMessageResponse converts a domain message.
func NewMessageResponse(msg *domain.Message) MessageResponse {
	return MessageResponse{
		ID:         msg.ID,
		Name:       msg.Name,
		Email:      msg.Email,
		Phone:      msg.Phone,
		Subject:    msg.Subject,
		Message:    msg.Body,
		Status:     msg.Status,
		AdminNotes: msg.AdminNotes,
		RepliedAt:  msg.RepliedAt,
		CreatedAt:  msg.CreatedAt,
		UpdatedAt:  msg.UpdatedAt,
	}
}
