package domain

import "time"

// UserRole is the coarse permission level carried by tokens and user records.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// ValidRole reports whether the value is one of the enumerated roles.
func ValidRole(role UserRole) bool {
	return role == RoleUser || role == RoleAdmin
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerSnapshot is the denormalized owner view attached to tickets at read
// time. A nil snapshot means the owner record no longer exists.
type OwnerSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
