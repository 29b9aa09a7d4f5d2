package trade

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Trade, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Trade, error)
	Create(ctx context.Context, item Trade) error
	Update(ctx context.Context, item Trade) error
}
