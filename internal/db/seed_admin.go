package db

import (
	"context"
	"errors"

	"github.com/geocoder89/learnhub/internal/config"
	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/geocoder89/learnhub/internal/security"
)

type userStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, email, name, passwordHash string, role user.Role) (user.User, error)
}

// EnsureAdminUser seeds the configured admin account if it does not exist.
// Signup only ever creates learners, so this is the one path that mints an
// admin. Works against either store backend.
func EnsureAdminUser(ctx context.Context, store userStore, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := store.GetByEmail(ctx, cfg.AdminEmail)

	if err == nil {
		return nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = store.Create(ctx, cfg.AdminEmail, cfg.AdminName, hash, user.RoleAdmin)

	if errors.Is(err, user.ErrEmailTaken) {
		// someone else seeded it between the check and the insert
		return nil
	}

	return err
}
