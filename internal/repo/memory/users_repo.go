package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/google/uuid"
)

// UsersRepo keeps accounts in a map keyed by email. The check-then-insert in
// Create runs under the write lock, so duplicate signups serialize here even
// though the backing store has no uniqueness constraint of its own.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User // email -> user
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.items[email]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) Create(_ context.Context, email, name, passwordHash string, role user.Role) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[email]; exists {
		return user.User{}, user.ErrEmailTaken
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.items[email] = u

	return u, nil
}
