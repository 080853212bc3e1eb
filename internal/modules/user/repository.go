package user

import "context"

// Repository defines data access for user accounts.
type Repository interface {
	// CreateUser persists a new account.
	CreateUser(ctx context.Context, u *User) error

	// GetUserByEmail retrieves an account by its unique email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID retrieves an account by UUID.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// ListUsers returns every account, newest first.
	ListUsers(ctx context.Context) ([]*User, error)

	// UpdateUser writes name, email, role, phone, address and (when set)
	// the password hash for an existing account.
	UpdateUser(ctx context.Context, u *User) error

	// DeleteUser removes an account.
	DeleteUser(ctx context.Context, id string) error

	// SearchCustomers finds customer accounts whose name or email matches
	// the query, case-insensitively.
	SearchCustomers(ctx context.Context, query string, limit int) ([]*User, error)
}
