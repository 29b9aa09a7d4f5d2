package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	qb "github.com/riftlabs/fantasy-esports/internal/platform/querybuilder"
)

const playerUpsertSuffix = `ON CONFLICT (public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    handle = EXCLUDED.handle,
    real_name = EXCLUDED.real_name,
    pro_team = EXCLUDED.pro_team,
    pro_league = EXCLUDED.pro_league,
    role = EXCLUDED.role,
    kills = EXCLUDED.kills,
    deaths = EXCLUDED.deaths,
    assists = EXCLUDED.assists,
    creep_score = EXCLUDED.creep_score,
    vision_score = EXCLUDED.vision_score,
    dragon_kills = EXCLUDED.dragon_kills,
    baron_kills = EXCLUDED.baron_kills,
    tower_kills = EXCLUDED.tower_kills,
    games_played = EXCLUDED.games_played,
    fantasy_points = EXCLUDED.fantasy_points,
    points_by_week = EXCLUDED.points_by_week,
    updated_at = NOW()`

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

var _ player.Repository = (*PlayerRepository)(nil)

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	item, err := playerFromRow(row)
	if err != nil {
		return player.Player{}, false, err
	}
	return item, true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []string) ([]player.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	query, args, err := playerBaseSelectBuilder().
		Where(
			qb.In("public_id", values),
			qb.IsNull("deleted_at"),
		).
		OrderBy("handle").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by ids query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) ListByProLeagues(ctx context.Context, proLeagues []string) ([]player.Player, error) {
	if len(proLeagues) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(proLeagues))
	for _, code := range proLeagues {
		values = append(values, code)
	}
	query, args, err := playerBaseSelectBuilder().
		Where(
			qb.In("pro_league", values),
			qb.IsNull("deleted_at"),
		).
		OrderBy("handle").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by pro leagues query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		item, err := playerFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	insertModel, err := playerInsertFromDomain(item)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("players", insertModel, playerUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) UpsertMany(ctx context.Context, items []player.Player) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel, err := playerInsertFromDomain(item)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("players", insertModel, playerUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert player query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert players tx: %w", err)
	}

	return nil
}

func playerBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("players")
}
