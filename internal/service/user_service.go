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

// UserPatch carries admin-editable profile fields. Nil means unchanged.
// Password is deliberately absent: any attempt to set it through this path is
// stripped at the DTO boundary before it reaches the service.
type UserPatch struct {
	Name  *string
	Email *string
	Phone *string
	Role  *domain.UserRole
}

// UserPage is an offset-paginated directory listing.
type UserPage struct {
	Items       []domain.User
	Page        int
	Limit       int
	Total       int64
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}

// UserService implements the admin-facing user directory operations.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// Get fetches a single user.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns a page of users ordered by creation time descending.
func (s *UserService) List(ctx context.Context, page, limit int) (*UserPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	items, err := s.users.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &UserPage{
		Items:       items,
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && total > 0,
	}, nil
}

// Update applies a patch to a user record. Email changes keep the lowercase
// invariant and must not collide with another account.
func (s *UserService) Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		user.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if email != user.Email {
			if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != user.ID {
				return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
			} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.MapError(err)
			}
			user.Email = email
		}
	}
	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *patch.Role})
		}
		user.Role = *patch.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes the directory record. Tickets owned by the user are not
// touched; readers see a null owner snapshot afterwards.
func (s *UserService) Delete(ctx context.Context, id string, actor events.Actor) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventUserDeleted,
		EntityID: id,
		Actor:    actor,
		Payload:  events.UserDeletedPayload{Email: user.Email},
	})
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
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
