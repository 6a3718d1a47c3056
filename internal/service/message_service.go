package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

const messageStatsKey = "stats:messages"

// MessageSubmitInput is a public contact-form submission.
type MessageSubmitInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Body    string
}

// MessageService coordinates the contact-message inbox.
type MessageService struct {
	messages   repository.MessageRepository
	dispatcher events.Dispatcher
	cache      *StatsCache
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository, dispatcher events.Dispatcher, cache *StatsCache) *MessageService {
	return &MessageService{messages: messages, dispatcher: dispatcher, cache: cache}
}

// Submit persists an anonymous submission as-is with status "new".
func (s *MessageService) Submit(ctx context.Context, input MessageSubmitInput) (*domain.Message, error) {
	msg := &domain.Message{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Body:    input.Body,
		Status:  domain.MessageStatusNew,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.invalidate(ctx, messageStatsKey)
	s.publish(ctx, events.Event{
		Type:     events.EventMessageReceived,
		EntityID: msg.ID,
		Payload: events.MessageReceivedPayload{
			SenderEmail: msg.Email,
			Subject:     msg.Subject,
		},
	})
	return msg, nil
}

// List returns all messages, newest first.
func (s *MessageService) List(ctx context.Context) ([]domain.Message, error) {
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return msgs, nil
}

// UpdateStatus transitions a message. The first transition to "replied" stamps
// RepliedAt; re-applying "replied" leaves the original stamp in place.
func (s *MessageService) UpdateStatus(ctx context.Context, id string, newStatus domain.MessageStatus, actor events.Actor) (*domain.Message, error) {
	if !domain.ValidMessageStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": newStatus})
	}

	current, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("message", nil)
		}
		return nil, apperrors.MapError(err)
	}

	var repliedAt *time.Time
	if newStatus == domain.MessageStatusReplied && current.RepliedAt == nil {
		now := time.Now()
		repliedAt = &now
	}

	msg, err := s.messages.UpdateStatus(ctx, id, newStatus, repliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("message", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.cache.invalidate(ctx, messageStatsKey)
	s.publish(ctx, events.Event{
		Type:     events.EventMessageStatusChanged,
		EntityID: msg.ID,
		Actor:    actor,
		Payload: events.MessageStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: newStatus,
		},
	})
	return msg, nil
}

// UpdateNotes overwrites the admin notes; no history is retained.
func (s *MessageService) UpdateNotes(ctx context.Context, id string, notes string) (*domain.Message, error) {
	msg, err := s.messages.UpdateNotes(ctx, id, notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("message", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return msg, nil
}

// Delete removes a message irreversibly.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("message", nil)
		}
		return apperrors.MapError(err)
	}
	s.cache.invalidate(ctx, messageStatsKey)
	return nil
}

// Stats recomputes aggregate counts, served from a short-lived cache.
func (s *MessageService) Stats(ctx context.Context) (*domain.MessageStats, error) {
	var cached domain.MessageStats
	if s.cache.get(ctx, messageStatsKey, &cached) {
		return &cached, nil
	}

	stats, err := s.messages.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.set(ctx, messageStatsKey, stats)
	return stats, nil
}

func (s *MessageService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
