package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - full access
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user has administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
