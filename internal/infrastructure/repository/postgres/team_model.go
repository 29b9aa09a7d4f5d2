package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/lib/pq"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
)

type teamTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	LeagueID    string         `db:"league_public_id"`
	OwnerID     string         `db:"owner_user_id"`
	Name        string         `db:"name"`
	Starters    []byte         `db:"starters"`
	Bench       pq.StringArray `db:"bench"`
	Wins        int            `db:"wins"`
	Losses      int            `db:"losses"`
	TotalPoints float64        `db:"total_points"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID    string         `db:"public_id"`
	LeagueID    string         `db:"league_public_id"`
	OwnerID     string         `db:"owner_user_id"`
	Name        string         `db:"name"`
	Starters    []byte         `db:"starters"`
	Bench       pq.StringArray `db:"bench"`
	Wins        int            `db:"wins"`
	Losses      int            `db:"losses"`
	TotalPoints float64        `db:"total_points"`
}

func encodeStarters(starters map[roster.Slot]string) ([]byte, error) {
	out := make(map[string]string, len(starters))
	for slot, playerID := range starters {
		out[string(slot)] = playerID
	}
	encoded, err := sonic.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal starters: %w", err)
	}
	return encoded, nil
}

func decodeStarters(raw []byte) (map[roster.Slot]string, error) {
	starters := make(map[roster.Slot]string)
	if len(raw) == 0 {
		return starters, nil
	}
	var decoded map[string]string
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal starters: %w", err)
	}
	for slot, playerID := range decoded {
		starters[roster.Slot(slot)] = playerID
	}
	return starters, nil
}

func teamInsertFromDomain(item roster.Team) (teamInsertModel, error) {
	starters, err := encodeStarters(item.Starters)
	if err != nil {
		return teamInsertModel{}, err
	}

	return teamInsertModel{
		PublicID:    item.ID,
		LeagueID:    item.LeagueID,
		OwnerID:     item.OwnerID,
		Name:        item.Name,
		Starters:    starters,
		Bench:       insertStringArray(item.Bench),
		Wins:        item.Wins,
		Losses:      item.Losses,
		TotalPoints: item.TotalPoints,
	}, nil
}

func teamFromRow(row teamTableModel) (roster.Team, error) {
	starters, err := decodeStarters(row.Starters)
	if err != nil {
		return roster.Team{}, err
	}

	return roster.Team{
		ID:          row.PublicID,
		LeagueID:    row.LeagueID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		Starters:    starters,
		Bench:       append([]string(nil), row.Bench...),
		Wins:        row.Wins,
		Losses:      row.Losses,
		TotalPoints: row.TotalPoints,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
