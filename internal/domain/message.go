package domain

import "time"

// MessageStatus enumerates inbox lifecycle states for contact submissions.
type MessageStatus string

const (
	MessageStatusNew      MessageStatus = "new"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusReplied  MessageStatus = "replied"
	MessageStatusArchived MessageStatus = "archived"
)

// ValidMessageStatus reports whether the value is an enumerated status.
func ValidMessageStatus(status MessageStatus) bool {
	switch status {
	case MessageStatusNew, MessageStatusRead, MessageStatusReplied, MessageStatusArchived:
		return true
	}
	return false
}

// Message is a public contact-form submission. The sender is not necessarily
// a registered user.
type Message struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Subject    string
	Body       string
	Status     MessageStatus
	AdminNotes string
	RepliedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MessageStats holds aggregate inbox counts recomputed per call.
type MessageStats struct {
	Total    int64 `json:"total"`
	New      int64 `json:"new"`
	Read     int64 `json:"read"`
	Replied  int64 `json:"replied"`
	Archived int64 `json:"archived"`
}
