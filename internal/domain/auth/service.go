package auth

import (
	"context"
)

// AuthService defines session lifecycle operations
type AuthService interface {
	// Register creates a user account, optionally linked to an employee
	// record; admin-only at the HTTP boundary
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)

	// LinkEmployee attaches an employee record to an existing account so
	// self-service endpoints can resolve the caller; admin-only
	LinkEmployee(ctx context.Context, req LinkEmployeeRequest) (UserResponse, error)

	// Login verifies credentials and issues an access/refresh token pair
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the authenticated user's profile
	Me(ctx context.Context) (UserResponse, error)
}
