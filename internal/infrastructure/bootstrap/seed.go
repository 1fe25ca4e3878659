// Package bootstrap seeds development accounts. Seeding is explicit and
// opt-in via SEED_DEFAULT_USERS; it must never be enabled in production.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cityworks/complaints-api/internal/core/domain"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

type seedAccount struct {
	username string
	role     string
	address  string
}

var defaultAccounts = []seedAccount{
	{username: domain.MasterAdminUsername, role: domain.RoleAdmin, address: "Community Office"},
	{username: "resident", role: domain.RoleResident, address: "123 Main St, Apt 101"},
	{username: "service", role: domain.RoleService, address: "Tech Team Base"},
}

// SeedDefaultUsers creates the master admin plus demo resident and service
// accounts when they do not exist yet. Existing accounts are left untouched.
func SeedDefaultUsers(ctx context.Context, repo ports.UserRepository, adminPassword, userPassword string, log zerolog.Logger) error {
	for _, acc := range defaultAccounts {
		if _, err := repo.FindByUsername(ctx, acc.username); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed lookup %s: %w", acc.username, err)
		}

		password := userPassword
		if acc.role == domain.RoleAdmin {
			password = adminPassword
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash %s: %w", acc.username, err)
		}

		user := &domain.User{
			Username:     acc.username,
			PasswordHash: string(hash),
			Role:         acc.role,
			Address:      acc.address,
			Status:       domain.StatusApproved,
		}
		if err := repo.Create(ctx, user); err != nil {
			// A concurrent instance may have seeded it first.
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return fmt.Errorf("seed create %s: %w", acc.username, err)
		}

		log.Info().Str("username", acc.username).Str("role", acc.role).Msg("seeded default user")
	}
	return nil
}
