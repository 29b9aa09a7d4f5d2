package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
	qb "github.com/riftlabs/fantasy-esports/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

var _ roster.Repository = (*TeamRepository)(nil)

func (r *TeamRepository) GetByID(ctx context.Context, id string) (roster.Team, bool, error) {
	return r.getByConditions(ctx, qb.Eq("public_id", id))
}

func (r *TeamRepository) GetByLeagueAndOwner(ctx context.Context, leagueID, ownerID string) (roster.Team, bool, error) {
	return r.getByConditions(ctx,
		qb.Eq("league_public_id", leagueID),
		qb.Eq("owner_user_id", ownerID),
	)
}

func (r *TeamRepository) getByConditions(ctx context.Context, conditions ...qb.Condition) (roster.Team, bool, error) {
	conditions = append(conditions, qb.IsNull("deleted_at"))
	query, args, err := teamBaseSelectBuilder().
		Where(conditions...).
		ToSQL()
	if err != nil {
		return roster.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Team{}, false, nil
		}
		return roster.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	item, err := teamFromRow(row)
	if err != nil {
		return roster.Team{}, false, err
	}
	return item, true, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]roster.Team, error) {
	query, args, err := teamBaseSelectBuilder().
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by league query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	out := make([]roster.Team, 0, len(rows))
	for _, row := range rows {
		item, err := teamFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, item roster.Team) error {
	insertModel, err := teamInsertFromDomain(item)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("fantasy_teams", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create team: %w", err)
	}

	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item roster.Team) error {
	query, args, err := buildTeamUpdateQuery(item)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update team: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update team: not found")
	}

	return nil
}

func (r *TeamRepository) UpdateMany(ctx context.Context, items []roster.Team) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update teams: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		query, args, err := buildTeamUpdateQuery(item)
		if err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update team %s: %w", item.ID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected update team %s: %w", item.ID, err)
		}
		if affected == 0 {
			return fmt.Errorf("update team %s: not found", item.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update teams tx: %w", err)
	}

	return nil
}

func buildTeamUpdateQuery(item roster.Team) (string, []any, error) {
	starters, err := encodeStarters(item.Starters)
	if err != nil {
		return "", nil, err
	}

	query, args, err := qb.Update("fantasy_teams").
		Set("name", item.Name).
		Set("starters", starters).
		Set("bench", insertStringArray(item.Bench)).
		Set("wins", item.Wins).
		Set("losses", item.Losses).
		Set("total_points", item.TotalPoints).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build update team query: %w", err)
	}
	return query, args, nil
}

func teamBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("fantasy_teams")
}
