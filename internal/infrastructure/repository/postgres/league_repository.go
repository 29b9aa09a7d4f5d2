package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riftlabs/fantasy-esports/internal/domain/league"
	qb "github.com/riftlabs/fantasy-esports/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

var _ league.Repository = (*LeagueRepository)(nil)

func (r *LeagueRepository) GetByID(ctx context.Context, id string) (league.League, bool, error) {
	query, args, err := leagueBaseSelectBuilder().
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	item, err := leagueFromRow(row)
	if err != nil {
		return league.League{}, false, err
	}
	return item, true, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := leagueBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		item, err := leagueFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	insertModel, err := leagueInsertFromDomain(item)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("fantasy_leagues", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create league: %w", err)
	}

	return nil
}

func (r *LeagueRepository) Update(ctx context.Context, item league.League) error {
	schedule, err := encodeSchedule(item.Schedule)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("fantasy_leagues").
		Set("name", item.Name).
		Set("max_teams", item.MaxTeams).
		Set("team_ids", insertStringArray(item.TeamIDs)).
		Set("schedule", schedule).
		Set("current_week", item.CurrentWeek).
		Set("status", string(item.Status)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update league: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update league: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update league: not found")
	}

	return nil
}

func leagueBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("fantasy_leagues")
}
