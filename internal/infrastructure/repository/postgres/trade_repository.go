package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riftlabs/fantasy-esports/internal/domain/trade"
	qb "github.com/riftlabs/fantasy-esports/internal/platform/querybuilder"
)

type TradeRepository struct {
	db *sqlx.DB
}

func NewTradeRepository(db *sqlx.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

var _ trade.Repository = (*TradeRepository)(nil)

func (r *TradeRepository) GetByID(ctx context.Context, id string) (trade.Trade, bool, error) {
	query, args, err := tradeBaseSelectBuilder().
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return trade.Trade{}, false, fmt.Errorf("build get trade query: %w", err)
	}

	var row tradeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return trade.Trade{}, false, nil
		}
		return trade.Trade{}, false, fmt.Errorf("get trade: %w", err)
	}

	return tradeFromRow(row), true, nil
}

func (r *TradeRepository) ListByTeam(ctx context.Context, teamID string) ([]trade.Trade, error) {
	query, args, err := tradeBaseSelectBuilder().
		Where(
			qb.Expr("(proposing_team_public_id = ? OR receiving_team_public_id = ?)", teamID, teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list trades by team query: %w", err)
	}

	var rows []tradeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list trades by team: %w", err)
	}

	out := make([]trade.Trade, 0, len(rows))
	for _, row := range rows {
		out = append(out, tradeFromRow(row))
	}
	return out, nil
}

func (r *TradeRepository) Create(ctx context.Context, item trade.Trade) error {
	insertModel := tradeInsertModel{
		PublicID:           item.ID,
		LeagueID:           item.LeagueID,
		ProposingTeamID:    item.ProposingTeamID,
		ReceivingTeamID:    item.ReceivingTeamID,
		OfferedPlayerIDs:   insertStringArray(item.OfferedPlayerIDs),
		RequestedPlayerIDs: insertStringArray(item.RequestedPlayerIDs),
		Status:             string(item.Status),
	}
	query, args, err := qb.InsertModel("trades", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create trade query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create trade: %w", err)
	}

	return nil
}

func (r *TradeRepository) Update(ctx context.Context, item trade.Trade) error {
	builder := qb.Update("trades").
		Set("status", string(item.Status)).
		SetExpr("updated_at", "NOW()")
	if !item.ResolvedAt.IsZero() {
		builder = builder.Set("resolved_at", item.ResolvedAt)
	}

	query, args, err := builder.
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update trade query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update trade: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update trade: not found")
	}

	return nil
}

func tradeBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("trades")
}
