package events

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated        EventType = "ticket_created"
	EventTicketStatusChanged  EventType = "ticket_status_changed"
	EventMessageReceived      EventType = "message_received"
	EventMessageStatusChanged EventType = "message_status_changed"
	EventUserDeleted          EventType = "user_deleted"
)

// Actor identifies who triggered an event. An empty UserID means the action
// came from an anonymous caller.
type Actor struct {
	UserID string          `json:"user_id,omitempty"`
	Role   domain.UserRole `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	OwnerID  string                `json:"owner_id"`
	Priority domain.TicketPriority `json:"priority"`
	Title    string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// MessageReceivedPayload payload.
type MessageReceivedPayload struct {
	SenderEmail string `json:"sender_email"`
	Subject     string `json:"subject"`
}

// MessageStatusChangedPayload payload.
type MessageStatusChangedPayload struct {
	OldStatus domain.MessageStatus `json:"old_status"`
	NewStatus domain.MessageStatus `json:"new_status"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Email string `json:"email"`
}
