package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riftlabs/fantasy-esports/internal/domain/trade"
)

type tradeTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	LeagueID           string         `db:"league_public_id"`
	ProposingTeamID    string         `db:"proposing_team_public_id"`
	ReceivingTeamID    string         `db:"receiving_team_public_id"`
	OfferedPlayerIDs   pq.StringArray `db:"offered_player_ids"`
	RequestedPlayerIDs pq.StringArray `db:"requested_player_ids"`
	Status             string         `db:"status"`
	CreatedAt          time.Time      `db:"created_at"`
	ResolvedAt         *time.Time     `db:"resolved_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
	DeletedAt          *time.Time     `db:"deleted_at"`
}

type tradeInsertModel struct {
	PublicID           string         `db:"public_id"`
	LeagueID           string         `db:"league_public_id"`
	ProposingTeamID    string         `db:"proposing_team_public_id"`
	ReceivingTeamID    string         `db:"receiving_team_public_id"`
	OfferedPlayerIDs   pq.StringArray `db:"offered_player_ids"`
	RequestedPlayerIDs pq.StringArray `db:"requested_player_ids"`
	Status             string         `db:"status"`
}

func tradeFromRow(row tradeTableModel) trade.Trade {
	item := trade.Trade{
		ID:                 row.PublicID,
		LeagueID:           row.LeagueID,
		ProposingTeamID:    row.ProposingTeamID,
		ReceivingTeamID:    row.ReceivingTeamID,
		OfferedPlayerIDs:   append([]string(nil), row.OfferedPlayerIDs...),
		RequestedPlayerIDs: append([]string(nil), row.RequestedPlayerIDs...),
		Status:             trade.Status(row.Status),
		CreatedAt:          row.CreatedAt,
	}
	if row.ResolvedAt != nil {
		item.ResolvedAt = *row.ResolvedAt
	}
	return item
}
