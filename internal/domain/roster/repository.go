package roster

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Team, bool, error)
	GetByLeagueAndOwner(ctx context.Context, leagueID, ownerID string) (Team, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	Create(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
	UpdateMany(ctx context.Context, items []Team) error
}
