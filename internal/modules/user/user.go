package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role is the access level assigned to a user account. New signups start as
// RolePending until a manager assigns a real role.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleInventory Role = "inventory"
	RoleChef      Role = "chef"
	RoleCashier   Role = "cashier"
	RoleDelivery  Role = "delivery"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
	RolePending   Role = "pending"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleInventory, RoleChef, RoleCashier,
		RoleDelivery, RoleManager, RoleAdmin, RolePending:
		return true
	}
	return false
}

// Staff reports whether the role belongs to bakery staff rather than a
// customer or an unapproved signup.
func (r Role) Staff() bool {
	switch r {
	case RoleInventory, RoleChef, RoleCashier, RoleDelivery, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// ErrNotFound is returned when a user lookup matches nothing.
var ErrNotFound = errors.New("user not found")

// Address is the structured postal address attached to an account.
type Address struct {
	Addr1  string `json:"addr1"`
	Addr2  string `json:"addr2"`
	City   string `json:"city"`
	Postal string `json:"postal"`
}

// User represents an account in the system.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Address      Address   `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
