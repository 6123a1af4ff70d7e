package domain

import "time"

// Role distinguishes guests who file requests from employees who resolve them.
type Role string

const (
	RoleGuest    Role = "guest"
	RoleEmployee Role = "employee"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleGuest || r == RoleEmployee
}

// User is the single account model for guests and employees. Email and the
// primary phone are globally unique; the secondary phone is unique only among
// present values. Role never changes after creation.
type User struct {
	ID             string
	Email          string
	FullName       string
	PasswordHash   string
	Role           Role
	PrimaryPhone   string
	SecondaryPhone *string
	Active         bool
	Staff          bool
	Superuser      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
