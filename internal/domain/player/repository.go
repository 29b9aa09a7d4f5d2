package player

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Player, bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]Player, error)
	ListByProLeagues(ctx context.Context, proLeagues []string) ([]Player, error)
	Upsert(ctx context.Context, item Player) error
	UpsertMany(ctx context.Context, items []Player) error
}
