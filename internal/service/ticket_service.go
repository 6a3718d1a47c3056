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

const ticketStatsKey = "stats:tickets"

// TicketCreateInput describes the ticket creation payload. The owner always
// comes from the authenticated caller, never from the payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Phone       string
	Screenshots []string
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	cache      *StatsCache
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Cache      *StatsCache
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
	}
}

// Create opens a ticket owned by the caller. Priority defaults to medium.
// The screenshot cap is enforced upstream at the API boundary.
func (s *TicketService) Create(ctx context.Context, ownerID string, input TicketCreateInput) (*domain.Ticket, error) {
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if !domain.ValidTicketPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}

	ticket := &domain.Ticket{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		Phone:       strings.TrimSpace(input.Phone),
		Screenshots: input.Screenshots,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.invalidate(ctx, ticketStatsKey)
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: ticket.ID,
		Actor:    events.Actor{UserID: ownerID, Role: domain.RoleUser},
		Payload: events.TicketCreatedPayload{
			OwnerID:  ticket.OwnerID,
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// ListForOwner returns the caller's own tickets, newest first.
func (s *TicketService) ListForOwner(ctx context.Context, ownerID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListAll returns every ticket enriched with a best-effort owner snapshot.
func (s *TicketService) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.enrich(ctx, tickets)
	return tickets, nil
}

// Get fetches a single ticket with owner snapshot, enforcing ownership for
// non-admin callers.
func (s *TicketService) Get(ctx context.Context, callerID string, isAdmin bool, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !isAdmin && ticket.OwnerID != callerID {
		return nil, apperrors.NewForbidden("not the ticket owner")
	}
	ticket.Owner = s.ownerSnapshot(ctx, ticket.OwnerID)
	return ticket, nil
}

// UpdateStatus sets the ticket status. Any enumerated value is reachable from
// any state; a closed ticket can be reopened. Admin-only via the gate.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, newStatus domain.TicketStatus, actor events.Actor) (*domain.Ticket, error) {
	if !domain.ValidTicketStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": newStatus})
	}

	current, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}

	ticket, err := s.tickets.UpdateStatus(ctx, ticketID, newStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.cache.invalidate(ctx, ticketStatsKey)
	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		EntityID: ticket.ID,
		Actor:    actor,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// Stats recomputes aggregate counts, served from a short-lived cache.
func (s *TicketService) Stats(ctx context.Context) (*domain.TicketStats, error) {
	var cached domain.TicketStats
	if s.cache.get(ctx, ticketStatsKey, &cached) {
		return &cached, nil
	}

	stats, err := s.tickets.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.set(ctx, ticketStatsKey, stats)
	return stats, nil
}

// enrich attaches owner snapshots in place. A missing owner leaves the
// snapshot nil rather than failing the listing.
func (s *TicketService) enrich(ctx context.Context, tickets []domain.Ticket) {
	snapshots := make(map[string]*domain.OwnerSnapshot)
	for i := range tickets {
		ownerID := tickets[i].OwnerID
		snapshot, seen := snapshots[ownerID]
		if !seen {
			snapshot = s.ownerSnapshot(ctx, ownerID)
			snapshots[ownerID] = snapshot
		}
		tickets[i].Owner = snapshot
	}
}

func (s *TicketService) ownerSnapshot(ctx context.Context, ownerID string) *domain.OwnerSnapshot {
	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil
	}
	return &domain.OwnerSnapshot{Name: user.Name, Email: user.Email, Phone: user.Phone}
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
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
