package ports

import (
	"context"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account.
type RegisterInput struct {
	Username string
	Password string
	Role     string // defaults to resident when empty
	Address  string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and account status, then returns a signed
	// token carrying the user's current role as a claim.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
