package player

import "fmt"

// Role represents the positional role a pro player occupies on the map.
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
)

var AllRoles = map[Role]struct{}{
	RoleTop:     {},
	RoleJungle:  {},
	RoleMid:     {},
	RoleADC:     {},
	RoleSupport: {},
}

// GameStats is a single professional game's stat line.
type GameStats struct {
	Kills       int
	Deaths      int
	Assists     int
	CreepScore  int
	VisionScore int
	DragonKills int
	BaronKills  int
	TowerKills  int
}

// SeasonTotals accumulates stat lines across every applied game.
type SeasonTotals struct {
	Kills         int
	Deaths        int
	Assists       int
	CreepScore    int
	VisionScore   int
	DragonKills   int
	BaronKills    int
	TowerKills    int
	GamesPlayed   int
	FantasyPoints float64
}

// Player is a draftable pro in the player pool.
type Player struct {
	ID           string
	Handle       string
	RealName     string
	ProTeam      string
	ProLeague    string
	Role         Role
	Totals       SeasonTotals
	PointsByWeek map[int]float64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Handle == "" {
		return fmt.Errorf("player handle is required")
	}
	if p.ProTeam == "" {
		return fmt.Errorf("player pro team is required")
	}
	if p.ProLeague == "" {
		return fmt.Errorf("player pro league is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}

	return nil
}

// WeekPoints returns the fantasy points the player earned in one week.
func (p Player) WeekPoints(week int) float64 {
	if p.PointsByWeek == nil {
		return 0
	}
	return p.PointsByWeek[week]
}

func (p Player) Clone() Player {
	copied := p
	if p.PointsByWeek != nil {
		copied.PointsByWeek = make(map[int]float64, len(p.PointsByWeek))
		for week, pts := range p.PointsByWeek {
			copied.PointsByWeek[week] = pts
		}
	}
	return copied
}
