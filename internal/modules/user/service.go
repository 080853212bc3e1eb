package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	// CreateUser creates an account with an explicit role. Used by managers.
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)

	// CreateCustomer creates an auto-approved customer account. Used at the counter.
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*User, error)

	// GetUser retrieves an account by UUID.
	GetUser(ctx context.Context, id string) (*User, error)

	// ListUsers returns every account, newest first.
	ListUsers(ctx context.Context) ([]*User, error)

	// UpdateUser updates an account. The password is only replaced when provided.
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error)

	// DeleteUser removes an account. Deleting your own account is rejected.
	DeleteUser(ctx context.Context, actorID, id string) error

	// SearchCustomers finds customers by name or email fragment.
	SearchCustomers(ctx context.Context, query string) ([]*User, error)
}

// CreateUserRequest is the payload for a manager-created account.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// CreateCustomerRequest is the payload for a counter-created customer.
type CreateCustomerRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    string  `json:"phone"`
	Address  Address `json:"address"`
}

// UpdateUserRequest is the payload for editing an account.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}
