package player

// Linear scoring weights. Deaths are the only negative category.
const (
	WeightKill       = 3.0
	WeightDeath      = -1.0
	WeightAssist     = 1.5
	WeightCreepScore = 0.02
	WeightDragon     = 1.0
	WeightBaron      = 2.0
	WeightTower      = 0.5
)

// GamePoints converts one game's stat line into fantasy points.
func GamePoints(g GameStats) float64 {
	return float64(g.Kills)*WeightKill +
		float64(g.Deaths)*WeightDeath +
		float64(g.Assists)*WeightAssist +
		float64(g.CreepScore)*WeightCreepScore +
		float64(g.DragonKills)*WeightDragon +
		float64(g.BaronKills)*WeightBaron +
		float64(g.TowerKills)*WeightTower
}

// ResetStats clears season totals and weekly buckets ahead of a full
// re-derivation from provider stat lines.
func (p *Player) ResetStats() {
	p.Totals = SeasonTotals{}
	p.PointsByWeek = nil
}

// ApplyGame folds a game's stat line into the player's season totals and
// accrues the game's fantasy points into the given week's bucket.
func (p *Player) ApplyGame(week int, g GameStats) float64 {
	points := GamePoints(g)

	p.Totals.Kills += g.Kills
	p.Totals.Deaths += g.Deaths
	p.Totals.Assists += g.Assists
	p.Totals.CreepScore += g.CreepScore
	p.Totals.VisionScore += g.VisionScore
	p.Totals.DragonKills += g.DragonKills
	p.Totals.BaronKills += g.BaronKills
	p.Totals.TowerKills += g.TowerKills
	p.Totals.GamesPlayed++
	p.Totals.FantasyPoints += points

	if p.PointsByWeek == nil {
		p.PointsByWeek = make(map[int]float64)
	}
	p.PointsByWeek[week] += points

	return points
}
