package league

import "sort"

// TeamRecord is a team's season record used to compute standings.
type TeamRecord struct {
	TeamID      string
	Wins        int
	Losses      int
	TotalPoints float64
}

// TeamRecords derives every member team's record from the completed
// matchups. Re-settling a week therefore never double-counts: the
// record is always a full recount, not an increment. Teams with no
// completed matchup get a zero record.
func (l League) TeamRecords() map[string]TeamRecord {
	records := make(map[string]TeamRecord, len(l.TeamIDs))
	for _, teamID := range l.TeamIDs {
		records[teamID] = TeamRecord{TeamID: teamID}
	}

	for _, m := range l.Schedule {
		if !m.Completed {
			continue
		}
		home := records[m.HomeTeamID]
		away := records[m.AwayTeamID]
		home.TeamID = m.HomeTeamID
		away.TeamID = m.AwayTeamID

		home.TotalPoints += m.HomeScore
		away.TotalPoints += m.AwayScore
		switch {
		case m.HomeScore > m.AwayScore:
			home.Wins++
			away.Losses++
		case m.AwayScore > m.HomeScore:
			away.Wins++
			home.Losses++
		}

		records[m.HomeTeamID] = home
		records[m.AwayTeamID] = away
	}
	return records
}

// Standing is one ranked row of the league table.
type Standing struct {
	Rank        int
	TeamID      string
	Wins        int
	Losses      int
	TotalPoints float64
}

// ComputeStandings orders teams by wins, then by total points. Teams
// equal on both share a rank, and the next distinct record takes the
// rank of its table position.
func ComputeStandings(records []TeamRecord) []Standing {
	sorted := append([]TeamRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Wins != sorted[j].Wins {
			return sorted[i].Wins > sorted[j].Wins
		}
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})

	out := make([]Standing, 0, len(sorted))
	for idx, rec := range sorted {
		rank := idx + 1
		if idx > 0 && rec.Wins == sorted[idx-1].Wins && rec.TotalPoints == sorted[idx-1].TotalPoints {
			rank = out[idx-1].Rank
		}
		out = append(out, Standing{
			Rank:        rank,
			TeamID:      rec.TeamID,
			Wins:        rec.Wins,
			Losses:      rec.Losses,
			TotalPoints: rec.TotalPoints,
		})
	}
	return out
}
