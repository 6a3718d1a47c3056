package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The state machine is
// permissive: any status is reachable from any status.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ValidTicketStatus reports whether the value is an enumerated status.
func ValidTicketStatus(status TicketStatus) bool {
	switch status {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ValidTicketPriority reports whether the value is an enumerated priority.
func ValidTicketPriority(priority TicketPriority) bool {
	switch priority {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// MaxScreenshots caps the attachment URL list on a ticket.
const MaxScreenshots = 3

// Ticket is the aggregate for support requests. Owner is set from the
// authenticated caller at creation and never client-supplied.
type Ticket struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	Phone       string
	Screenshots []string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Owner is populated by read-time enrichment; nil when the owning user
	// record has been deleted.
	Owner *OwnerSnapshot
}

// TicketStats holds aggregate counts recomputed over the full collection.
type TicketStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
}
