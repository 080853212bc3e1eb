package auth

import (
	"context"

	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login verifies credentials and returns a signed token plus the account.
	Login(ctx context.Context, email, password string) (string, *user.User, error)

	// Signup registers a new account awaiting role approval.
	Signup(ctx context.Context, req SignupRequest) (*user.User, error)
}

// SignupRequest is the payload for self-service registration.
type SignupRequest struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Phone    string       `json:"phone,omitempty"`
	Address  user.Address `json:"address"`
}
