package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cityworks/complaints-api/internal/core/domain"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository, shared by the auth/profile/admin tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	stored := cloneUser(user)
	if stored.ID == "" {
		stored.ID = user.Username
	}
	r.users[stored.Username] = stored
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateAddress(_ context.Context, username, address string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Address = address
	return nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, username, status string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

// ListByRole mirrors the Mongo repository: filter by role, exclude one
// username, strip password hashes.
func (r *stubUserRepo) ListByRole(_ context.Context, role, excludeUsername string) ([]*domain.User, error) {
	out := make([]*domain.User, 0)
	for _, u := range r.users {
		if u.Role != role || u.Username == excludeUsername {
			continue
		}
		clone := cloneUser(u)
		clone.PasswordHash = ""
		out = append(out, clone)
	}
	return out, nil
}

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Resident(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), registerInput("alice", "pass123", domain.RoleResident))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Status != domain.StatusApproved {
		t.Fatalf("resident must be approved at creation, got %q", user.Status)
	}
}

func TestAuthService_Register_DefaultsToResident(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), registerInput("bob", "pass", ""))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleResident {
		t.Fatalf("expected default role resident, got %q", user.Role)
	}
}

func TestAuthService_Register_AdminStartsPending(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), registerInput("clerk", "pass", domain.RoleAdmin))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Status != domain.StatusPending {
		t.Fatalf("non-master admin must start pending, got %q", user.Status)
	}
}

func TestAuthService_Register_MasterAdminApproved(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), registerInput(domain.MasterAdminUsername, "pass", domain.RoleAdmin))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Status != domain.StatusApproved {
		t.Fatalf("master admin must be approved at creation, got %q", user.Status)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), registerInput("", "pass", "")); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("dana", "", "")); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("dana", "pass", "mayor")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), registerInput("eve", "pass", "")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("eve", "other", "")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), registerInput("carol", "s3cret", domain.RoleService)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "carol" {
		t.Fatalf("expected username claim carol, got %v", claims["username"])
	}
	if claims["role"] != domain.RoleService {
		t.Fatalf("expected role claim %s, got %v", domain.RoleService, claims["role"])
	}
}

// Unknown usernames and wrong passwords must fail identically so responses
// cannot be used to enumerate accounts.
func TestAuthService_Login_InvalidCredentialsIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), registerInput("dave", "goodpass", ""))

	_, _, wrongPass := svc.Login(context.Background(), "dave", "badpass")
	_, _, unknownUser := svc.Login(context.Background(), "ghost", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownUser)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuthService_Login_PendingAndRejected(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), registerInput("clerk", "pass", domain.RoleAdmin))

	if _, _, err := svc.Login(context.Background(), "clerk", "pass"); !errors.Is(err, domain.ErrAccountPending) {
		t.Fatalf("expected ErrAccountPending, got %v", err)
	}

	if err := repo.UpdateStatus(context.Background(), "clerk", domain.StatusRejected); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "clerk", "pass"); !errors.Is(err, domain.ErrAccountRejected) {
		t.Fatalf("expected ErrAccountRejected, got %v", err)
	}
}

// A pending admin can log in once the master admin approves the account.
func TestAuthService_Login_AfterApproval(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), registerInput("clerk", "pass", domain.RoleAdmin))
	if _, _, err := svc.Login(context.Background(), "clerk", "pass"); !errors.Is(err, domain.ErrAccountPending) {
		t.Fatalf("expected ErrAccountPending before approval, got %v", err)
	}

	if err := repo.UpdateStatus(context.Background(), "clerk", domain.StatusApproved); err != nil {
		t.Fatalf("update status: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "clerk", "pass")
	if err != nil {
		t.Fatalf("login after approval failed: %v", err)
	}
	if token == "" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
	}
}

func registerInput(username, password, role string) ports.RegisterInput {
	return ports.RegisterInput{Username: username, Password: password, Role: role}
}
