package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, bool, error)
	GetByEmail(ctx context.Context, email string) (Profile, bool, error)
	Create(ctx context.Context, item Profile) error
	Update(ctx context.Context, item Profile) error
}
