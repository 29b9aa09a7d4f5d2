package league

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (League, bool, error)
	List(ctx context.Context) ([]League, error)
	Create(ctx context.Context, item League) error
	Update(ctx context.Context, item League) error
}
