package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riftlabs/fantasy-esports/internal/domain/league"
)

type LeagueRepository struct {
	mu    sync.RWMutex
	items map[string]league.League
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{items: make(map[string]league.League)}
}

func (r *LeagueRepository) GetByID(_ context.Context, id string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return league.League{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *LeagueRepository) Update(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}
