package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
	deleted []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*User), byID: make(map[string]*User)}
}

func (f *fakeRepo) CreateUser(_ context.Context, u *User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
	return nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) ListUsers(_ context.Context) ([]*User, error) { return nil, nil }

func (f *fakeRepo) UpdateUser(_ context.Context, u *User) error {
	f.byID[u.ID.String()] = u
	return nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) SearchCustomers(_ context.Context, _ string, _ int) ([]*User, error) {
	return []*User{{Name: "match"}}, nil
}

func TestCreateUserRejectsTakenEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.byEmail["taken@sweetbite.io"] = &User{ID: uuid.New(), Email: "taken@sweetbite.io"}

	svc := NewService(repo)
	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Name: "New", Email: "taken@sweetbite.io", Password: "pw12345", Role: RoleChef,
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestCreateUserDefaultsToPendingRole(t *testing.T) {
	svc := NewService(newFakeRepo())
	u, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Name: "Joe", Email: "joe@sweetbite.io", Password: "pw12345",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Role != RolePending {
		t.Errorf("role = %q, want %q", u.Role, RolePending)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw12345")); err != nil {
		t.Error("password hash does not verify")
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Name: "Joe", Email: "joe@sweetbite.io", Password: "pw12345", Role: "wizard",
	})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestCreateCustomerIsAutoApproved(t *testing.T) {
	svc := NewService(newFakeRepo())
	u, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
		Name: "Amina", Email: "amina@sweetbite.io", Password: "pw12345", Phone: "0977000001",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if u.Role != RoleCustomer {
		t.Errorf("role = %q, want %q", u.Role, RoleCustomer)
	}
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	id := uuid.New().String()
	if err := svc.DeleteUser(context.Background(), id, id); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("err = %v, want ErrSelfDelete", err)
	}
	if len(repo.deleted) != 0 {
		t.Error("repository delete ran for a self-delete")
	}
}

func TestSearchCustomersShortQueryReturnsEmpty(t *testing.T) {
	svc := NewService(newFakeRepo())
	got, err := svc.SearchCustomers(context.Background(), "a")
	if err != nil {
		t.Fatalf("SearchCustomers: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d results for a one-character query, want none", len(got))
	}
}
