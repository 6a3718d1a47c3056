package dto

import "github.com/spec-kit/helpdesk/internal/domain"

// UpdateUserRequest patches profile fields. Password is accepted in the JSON
// shape but silently dropped; password changes never flow through this path.
type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Email    *string          `json:"email"`
	Phone    *string          `json:"phone"`
	Role     *domain.UserRole `json:"role"`
	Password *string          `json:"password"`
}

// Pagination describes an offset-paginated listing.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// UserListResponse is the admin directory listing.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}
