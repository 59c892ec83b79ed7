package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/calhub/internal/domain/user"
	"github.com/geocoder89/calhub/internal/repo/postgres"
	"github.com/google/uuid"
)

// UsersRepo keeps credentials in memory with the same uniqueness contract
// as the postgres repo.
type UsersRepo struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byEmail: make(map[string]user.User),
	}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.byEmail[email]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, postgres.ErrUserNotFound
	}

	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// check-and-insert under one lock keeps the uniqueness invariant atomic
	if _, ok := r.byEmail[email]; ok {
		return user.User{}, postgres.ErrEmailAlreadyUsed
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.byEmail[email] = u

	return u, nil
}
