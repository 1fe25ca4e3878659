package ports

import (
	"context"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

// ProfileService exposes a caller's own account record.
type ProfileService interface {
	Profile(ctx context.Context, username string) (*domain.User, error)
	// UpdateProfile applies the only mutable profile field. A nil address
	// means the request carried no recognized field.
	UpdateProfile(ctx context.Context, username string, address *string) (*domain.User, error)
}
