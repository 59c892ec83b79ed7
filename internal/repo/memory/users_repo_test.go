package memory_test

import (
	"context"
	"testing"

	"github.com/geocoder89/calhub/internal/repo/memory"
	"github.com/geocoder89/calhub/internal/repo/postgres"
)

func TestUsersRepoEnforcesEmailUniqueness(t *testing.T) {
	r := memory.NewUsersRepo()
	ctx := context.Background()

	first, err := r.Create(ctx, "a@b.co", "hash-1")

	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err = r.Create(ctx, "a@b.co", "hash-2")

	if err != postgres.ErrEmailAlreadyUsed {
		t.Fatalf("got %v, want ErrEmailAlreadyUsed", err)
	}

	// the original record must be intact
	got, err := r.GetByEmail(ctx, "a@b.co")

	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.ID != first.ID || got.PasswordHash != "hash-1" {
		t.Fatalf("first record was replaced: %+v", got)
	}
}

func TestUsersRepoGetByEmailMissing(t *testing.T) {
	r := memory.NewUsersRepo()

	_, err := r.GetByEmail(context.Background(), "nobody@b.co")

	if err != postgres.ErrUserNotFound {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}
