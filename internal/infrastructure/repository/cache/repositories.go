// Package cache decorates repositories with a read-through store.
// Cache keys embed a namespace version; services bump the version on
// writes, so stale entries expire without explicit deletes.
package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/riftlabs/fantasy-esports/internal/domain/league"
	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
	basecache "github.com/riftlabs/fantasy-esports/internal/platform/cache"
)

const (
	NamespaceLeagues = "league"
	NamespaceTeams   = "team"
	NamespacePlayers = "player"
)

type LeagueRepository struct {
	next     league.Repository
	cache    *basecache.Store
	versions *basecache.Versions
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store, versions *basecache.Versions) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache, versions: versions}
}

var _ league.Repository = (*LeagueRepository)(nil)

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := r.versions.Key(NamespaceLeagues, "id:"+leagueID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value.Clone(), cached.exists, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	key := r.versions.Key(NamespaceLeagues, "list")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneLeagues(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return cloneLeagues(items), nil
}

// Writes pass through untouched. Invalidation happens via the version
// bumps the app layer wires to usecase change listeners.
func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	return r.next.Create(ctx, item)
}

func (r *LeagueRepository) Update(ctx context.Context, item league.League) error {
	return r.next.Update(ctx, item)
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

func cloneLeagues(items []league.League) []league.League {
	out := make([]league.League, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

type TeamRepository struct {
	next     roster.Repository
	cache    *basecache.Store
	versions *basecache.Versions
}

func NewTeamRepository(next roster.Repository, cache *basecache.Store, versions *basecache.Versions) *TeamRepository {
	return &TeamRepository{next: next, cache: cache, versions: versions}
}

var _ roster.Repository = (*TeamRepository)(nil)

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (roster.Team, bool, error) {
	key := r.versions.Key(NamespaceTeams, "id:"+teamID)
	return r.getCached(ctx, key, func(ctx context.Context) (roster.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

func (r *TeamRepository) GetByLeagueAndOwner(ctx context.Context, leagueID, ownerID string) (roster.Team, bool, error) {
	key := r.versions.Key(NamespaceTeams, "league:"+leagueID+":owner:"+ownerID)
	return r.getCached(ctx, key, func(ctx context.Context) (roster.Team, bool, error) {
		return r.next.GetByLeagueAndOwner(ctx, leagueID, ownerID)
	})
}

func (r *TeamRepository) getCached(ctx context.Context, key string, load func(context.Context) (roster.Team, bool, error)) (roster.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return roster.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value.Clone(), cached.exists, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]roster.Team, error) {
	key := r.versions.Key(NamespaceTeams, "list:"+leagueID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cloneTeams(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.Team)
	return cloneTeams(items), nil
}

func (r *TeamRepository) Create(ctx context.Context, item roster.Team) error {
	return r.next.Create(ctx, item)
}

func (r *TeamRepository) Update(ctx context.Context, item roster.Team) error {
	return r.next.Update(ctx, item)
}

func (r *TeamRepository) UpdateMany(ctx context.Context, items []roster.Team) error {
	return r.next.UpdateMany(ctx, items)
}

type cachedTeamByID struct {
	value  roster.Team
	exists bool
}

func cloneTeams(items []roster.Team) []roster.Team {
	out := make([]roster.Team, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

type PlayerRepository struct {
	next     player.Repository
	cache    *basecache.Store
	versions *basecache.Versions
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store, versions *basecache.Versions) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache, versions: versions}
}

var _ player.Repository = (*PlayerRepository)(nil)

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := r.versions.Key(NamespacePlayers, "id:"+playerID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value.Clone(), cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := r.versions.Key(NamespacePlayers, "ids:"+strings.Join(ids, ","))
	return r.listCached(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.GetByIDs(ctx, playerIDs)
	})
}

func (r *PlayerRepository) ListByProLeagues(ctx context.Context, proLeagues []string) ([]player.Player, error) {
	codes := append([]string(nil), proLeagues...)
	sort.Strings(codes)
	key := r.versions.Key(NamespacePlayers, "leagues:"+strings.Join(codes, ","))
	return r.listCached(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByProLeagues(ctx, proLeagues)
	})
}

func (r *PlayerRepository) listCached(ctx context.Context, key string, load func(context.Context) ([]player.Player, error)) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return clonePlayers(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return clonePlayers(items), nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	return r.next.Upsert(ctx, item)
}

func (r *PlayerRepository) UpsertMany(ctx context.Context, items []player.Player) error {
	return r.next.UpsertMany(ctx, items)
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
