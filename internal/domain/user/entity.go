package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, reviews leave and marks attendance
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
