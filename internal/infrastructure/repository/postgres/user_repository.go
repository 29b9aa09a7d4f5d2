package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riftlabs/fantasy-esports/internal/domain/user"
	qb "github.com/riftlabs/fantasy-esports/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.Profile, bool, error) {
	return r.getByCondition(ctx, qb.Eq("public_id", id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.Profile, bool, error) {
	return r.getByCondition(ctx, qb.Eq("email", email))
}

func (r *UserRepository) getByCondition(ctx context.Context, cond qb.Condition) (user.Profile, bool, error) {
	query, args, err := userBaseSelectBuilder().
		Where(cond, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get user: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) Create(ctx context.Context, item user.Profile) error {
	insertModel := userInsertModel{
		PublicID:    item.ID,
		Email:       item.Email,
		Username:    item.Username,
		DisplayName: item.DisplayName,
	}
	query, args, err := qb.InsertModel("users", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepository) Update(ctx context.Context, item user.Profile) error {
	query, args, err := qb.Update("users").
		Set("email", item.Email).
		Set("username", item.Username).
		Set("display_name", item.DisplayName).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update user: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update user: not found")
	}

	return nil
}

func userFromRow(row userTableModel) user.Profile {
	return user.Profile{
		ID:          row.PublicID,
		Email:       row.Email,
		Username:    row.Username,
		DisplayName: row.DisplayName,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func userBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("users")
}
