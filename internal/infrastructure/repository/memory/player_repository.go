package memory

import (
	"context"
	"sync"

	"github.com/riftlabs/fantasy-esports/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{items: make(map[string]player.Player)}
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return player.Player{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListByProLeagues(_ context.Context, proLeagues []string) ([]player.Player, error) {
	wanted := make(map[string]struct{}, len(proLeagues))
	for _, code := range proLeagues {
		wanted[code] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, item := range r.items {
		if _, ok := wanted[item.ProLeague]; ok {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *PlayerRepository) UpsertMany(_ context.Context, items []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[item.ID] = item.Clone()
	}
	return nil
}
