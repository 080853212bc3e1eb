package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetbite/sweetbite-backend/internal/middleware"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
)

type fakeUserRepo struct {
	user.Repository
	users map[string]*user.User
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u *user.User) error {
	f.users[u.Email] = u
	return nil
}

func repoWithUser(t *testing.T, email, password string, role user.Role) *fakeUserRepo {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return &fakeUserRepo{users: map[string]*user.User{
		email: {ID: uuid.New(), Email: email, PasswordHash: string(hashed), Role: role},
	}}
}

func TestLoginIssuesTokenWithRoleClaim(t *testing.T) {
	repo := repoWithUser(t, "chef@sweetbite.io", "pw12345", user.RoleChef)
	svc := NewService(repo, "test-secret")

	tokenString, u, err := svc.Login(context.Background(), "chef@sweetbite.io", "pw12345")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Email != "chef@sweetbite.io" {
		t.Errorf("user email = %q", u.Email)
	}

	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Role != string(user.RoleChef) {
		t.Errorf("role claim = %q, want %q", claims.Role, user.RoleChef)
	}
	if claims.UserID != u.ID.String() {
		t.Errorf("user id claim = %q, want %q", claims.UserID, u.ID)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := repoWithUser(t, "chef@sweetbite.io", "pw12345", user.RoleChef)
	svc := NewService(repo, "test-secret")

	_, _, err := svc.Login(context.Background(), "chef@sweetbite.io", "nope")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := NewService(&fakeUserRepo{users: map[string]*user.User{}}, "test-secret")
	_, _, err := svc.Login(context.Background(), "ghost@sweetbite.io", "pw12345")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignupCreatesPendingAccount(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*user.User{}}
	svc := NewService(repo, "test-secret")

	u, err := svc.Signup(context.Background(), SignupRequest{
		Name: "New Hire", Email: "new@sweetbite.io", Password: "pw12345",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if u.Role != user.RolePending {
		t.Errorf("role = %q, want %q (staff roles are assigned by a manager)", u.Role, user.RolePending)
	}
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	repo := repoWithUser(t, "chef@sweetbite.io", "pw12345", user.RoleChef)
	svc := NewService(repo, "test-secret")

	_, err := svc.Signup(context.Background(), SignupRequest{
		Email: "chef@sweetbite.io", Password: "pw12345",
	})
	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}
