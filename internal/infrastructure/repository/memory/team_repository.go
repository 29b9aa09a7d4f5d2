package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]roster.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[string]roster.Team)}
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (roster.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return roster.Team{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *TeamRepository) GetByLeagueAndOwner(_ context.Context, leagueID, ownerID string) (roster.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.LeagueID == leagueID && item.OwnerID == ownerID {
			return item.Clone(), true, nil
		}
	}
	return roster.Team{}, false, nil
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Team, 0, len(r.items))
	for _, item := range r.items {
		if item.LeagueID == leagueID {
			out = append(out, item.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, item roster.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *TeamRepository) Update(_ context.Context, item roster.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *TeamRepository) UpdateMany(_ context.Context, items []roster.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[item.ID] = item.Clone()
	}
	return nil
}
