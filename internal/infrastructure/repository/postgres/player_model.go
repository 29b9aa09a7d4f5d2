package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riftlabs/fantasy-esports/internal/domain/player"
)

type playerTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	Handle        string     `db:"handle"`
	RealName      string     `db:"real_name"`
	ProTeam       string     `db:"pro_team"`
	ProLeague     string     `db:"pro_league"`
	Role          string     `db:"role"`
	Kills         int        `db:"kills"`
	Deaths        int        `db:"deaths"`
	Assists       int        `db:"assists"`
	CreepScore    int        `db:"creep_score"`
	VisionScore   int        `db:"vision_score"`
	DragonKills   int        `db:"dragon_kills"`
	BaronKills    int        `db:"baron_kills"`
	TowerKills    int        `db:"tower_kills"`
	GamesPlayed   int        `db:"games_played"`
	FantasyPoints float64    `db:"fantasy_points"`
	PointsByWeek  []byte     `db:"points_by_week"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID      string  `db:"public_id"`
	Handle        string  `db:"handle"`
	RealName      string  `db:"real_name"`
	ProTeam       string  `db:"pro_team"`
	ProLeague     string  `db:"pro_league"`
	Role          string  `db:"role"`
	Kills         int     `db:"kills"`
	Deaths        int     `db:"deaths"`
	Assists       int     `db:"assists"`
	CreepScore    int     `db:"creep_score"`
	VisionScore   int     `db:"vision_score"`
	DragonKills   int     `db:"dragon_kills"`
	BaronKills    int     `db:"baron_kills"`
	TowerKills    int     `db:"tower_kills"`
	GamesPlayed   int     `db:"games_played"`
	FantasyPoints float64 `db:"fantasy_points"`
	PointsByWeek  []byte  `db:"points_by_week"`
}

func playerInsertFromDomain(item player.Player) (playerInsertModel, error) {
	pointsByWeek := item.PointsByWeek
	if pointsByWeek == nil {
		pointsByWeek = map[int]float64{}
	}
	encoded, err := sonic.Marshal(pointsByWeek)
	if err != nil {
		return playerInsertModel{}, fmt.Errorf("marshal points by week: %w", err)
	}

	return playerInsertModel{
		PublicID:      item.ID,
		Handle:        item.Handle,
		RealName:      item.RealName,
		ProTeam:       item.ProTeam,
		ProLeague:     item.ProLeague,
		Role:          string(item.Role),
		Kills:         item.Totals.Kills,
		Deaths:        item.Totals.Deaths,
		Assists:       item.Totals.Assists,
		CreepScore:    item.Totals.CreepScore,
		VisionScore:   item.Totals.VisionScore,
		DragonKills:   item.Totals.DragonKills,
		BaronKills:    item.Totals.BaronKills,
		TowerKills:    item.Totals.TowerKills,
		GamesPlayed:   item.Totals.GamesPlayed,
		FantasyPoints: item.Totals.FantasyPoints,
		PointsByWeek:  encoded,
	}, nil
}

func playerFromRow(row playerTableModel) (player.Player, error) {
	pointsByWeek := map[int]float64{}
	if len(row.PointsByWeek) > 0 {
		if err := sonic.Unmarshal(row.PointsByWeek, &pointsByWeek); err != nil {
			return player.Player{}, fmt.Errorf("unmarshal points by week: %w", err)
		}
	}

	return player.Player{
		ID:        row.PublicID,
		Handle:    row.Handle,
		RealName:  row.RealName,
		ProTeam:   row.ProTeam,
		ProLeague: row.ProLeague,
		Role:      player.Role(row.Role),
		Totals: player.SeasonTotals{
			Kills:         row.Kills,
			Deaths:        row.Deaths,
			Assists:       row.Assists,
			CreepScore:    row.CreepScore,
			VisionScore:   row.VisionScore,
			DragonKills:   row.DragonKills,
			BaronKills:    row.BaronKills,
			TowerKills:    row.TowerKills,
			GamesPlayed:   row.GamesPlayed,
			FantasyPoints: row.FantasyPoints,
		},
		PointsByWeek: pointsByWeek,
	}, nil
}
