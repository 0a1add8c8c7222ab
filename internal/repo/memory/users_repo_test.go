package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/geocoder89/learnhub/internal/repo/memory"
)

func TestUsersRepoCreateAndGet(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, "a@b.com", "A", "hash-1", user.RoleLearner)

	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.ID == "" {
		t.Errorf("expected a generated id")
	}
	if created.Role != user.RoleLearner {
		t.Errorf("got role %q, want learner", created.Role)
	}

	got, err := repo.GetByEmail(ctx, "a@b.com")

	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}

	if got.ID != created.ID || got.PasswordHash != "hash-1" {
		t.Errorf("GetByEmail returned %+v, want the created user", got)
	}
}

func TestUsersRepoDuplicateEmail(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "a@b.com", "A", "hash-1", user.RoleLearner); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	_, err := repo.Create(ctx, "a@b.com", "B", "hash-2", user.RoleAdmin)

	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("got err %v, want ErrEmailTaken", err)
	}
}

func TestUsersRepoUnknownEmail(t *testing.T) {
	repo := memory.NewUsersRepo()

	_, err := repo.GetByEmail(context.Background(), "nobody@b.com")

	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}
}
