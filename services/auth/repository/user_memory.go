package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/services/auth"
)

// UserMemoryRepo is an in-process user directory for local runs and tests
type UserMemoryRepo struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewUserMemoryRepo creates an empty in-memory user directory
func NewUserMemoryRepo() *UserMemoryRepo {
	return &UserMemoryRepo{users: make(map[string]*models.User)}
}

// FindByMobile returns the user registered with mobile
func (r *UserMemoryRepo) FindByMobile(_ context.Context, mobile string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[mobile]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// Create registers a new user, failing with ErrUserExists on a duplicate mobile
func (r *UserMemoryRepo) Create(_ context.Context, mobile string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[mobile]; ok {
		return nil, auth.ErrUserExists
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Mobile:    mobile,
		CreatedAt: time.Now().UTC(),
	}
	r.users[mobile] = user

	cp := *user
	return &cp, nil
}
