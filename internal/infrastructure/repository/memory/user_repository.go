package memory

import (
	"context"
	"sync"

	"github.com/riftlabs/fantasy-esports/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]user.Profile)}
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return user.Profile{}, false, nil
	}
	return item, true, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Email == email {
			return item, true, nil
		}
	}
	return user.Profile{}, false, nil
}

func (r *UserRepository) Create(_ context.Context, item user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *UserRepository) Update(_ context.Context, item user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}
