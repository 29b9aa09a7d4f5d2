package league

import "fmt"

// GenerateSchedule builds a schedule of the given number of weeks via
// the circle method and moves the league to active. Team order is taken
// from TeamIDs, so the same membership always yields the same schedule.
//
// The first team stays fixed while the rest rotate one position each
// week; week pairings read the arrangement from both ends inward. Four
// teams joined in order T0..T3 produce:
//
//	week 1: T0 vs T3, T1 vs T2
//	week 2: T0 vs T2, T3 vs T1
//	week 3: T0 vs T1, T2 vs T3
//
// The rotation has period n-1, so seasons longer than n-1 weeks repeat
// pairings: week n replays week 1, week n+1 replays week 2, and so on.
func (l *League) GenerateSchedule(weeks int) error {
	if l.Status != StatusForming {
		return ErrAlreadyStarted
	}
	if len(l.TeamIDs) < 2 {
		return ErrNotEnoughTeams
	}
	if len(l.TeamIDs)%2 != 0 {
		return ErrOddTeamCount
	}
	if weeks < 1 {
		return ErrInvalidWeekCount
	}

	n := len(l.TeamIDs)
	rotation := append([]string(nil), l.TeamIDs[1:]...)
	schedule := make([]Matchup, 0, weeks*n/2)

	for week := 1; week <= weeks; week++ {
		arrangement := make([]string, 0, n)
		arrangement = append(arrangement, l.TeamIDs[0])
		arrangement = append(arrangement, rotation...)

		for idx := 0; idx < n/2; idx++ {
			home := arrangement[idx]
			away := arrangement[n-1-idx]
			schedule = append(schedule, Matchup{
				ID:         fmt.Sprintf("%s-w%d-m%d", l.ID, week, idx+1),
				Week:       week,
				HomeTeamID: home,
				AwayTeamID: away,
			})
		}

		rotated := make([]string, 0, len(rotation))
		rotated = append(rotated, rotation[len(rotation)-1])
		rotated = append(rotated, rotation[:len(rotation)-1]...)
		rotation = rotated
	}

	l.Schedule = schedule
	l.Status = StatusActive
	l.CurrentWeek = 1
	return nil
}

// SetProvisionalScores writes in-progress scores onto the week's
// unsettled matchups. Completed matchups keep their settled scores, and
// the week is neither completed nor advanced.
func (l *League) SetProvisionalScores(week int, scoresByTeam map[string]float64) error {
	if _, err := l.MatchupsForWeek(week); err != nil {
		return err
	}

	for idx := range l.Schedule {
		m := &l.Schedule[idx]
		if m.Week != week || m.Completed {
			continue
		}
		if score, ok := scoresByTeam[m.HomeTeamID]; ok {
			m.HomeScore = score
		}
		if score, ok := scoresByTeam[m.AwayTeamID]; ok {
			m.AwayScore = score
		}
	}
	return nil
}

// MatchupsForWeek returns the week's pairings in schedule order.
func (l League) MatchupsForWeek(week int) ([]Matchup, error) {
	if len(l.Schedule) == 0 {
		return nil, ErrScheduleNotSet
	}
	if week < 1 || week > l.Weeks() {
		return nil, ErrWeekOutOfRange
	}

	out := make([]Matchup, 0, len(l.TeamIDs)/2)
	for _, m := range l.Schedule {
		if m.Week == week {
			out = append(out, m)
		}
	}
	return out, nil
}

// MatchResult reports one settled matchup. Ties leave both IDs empty.
type MatchResult struct {
	Matchup  Matchup
	WinnerID string
	LoserID  string
}

// ApplyWeekScores writes team scores onto the week's matchups, marks them
// completed, and advances CurrentWeek past the settled week. Scores for
// every team in the week's matchups must be present in scoresByTeam.
func (l *League) ApplyWeekScores(week int, scoresByTeam map[string]float64) ([]MatchResult, error) {
	matchups, err := l.MatchupsForWeek(week)
	if err != nil {
		return nil, err
	}

	for _, m := range matchups {
		if _, ok := scoresByTeam[m.HomeTeamID]; !ok {
			return nil, ErrUnknownTeamScore
		}
		if _, ok := scoresByTeam[m.AwayTeamID]; !ok {
			return nil, ErrUnknownTeamScore
		}
	}

	results := make([]MatchResult, 0, len(matchups))
	for idx := range l.Schedule {
		m := &l.Schedule[idx]
		if m.Week != week {
			continue
		}

		m.HomeScore = scoresByTeam[m.HomeTeamID]
		m.AwayScore = scoresByTeam[m.AwayTeamID]
		m.Completed = true

		result := MatchResult{Matchup: *m}
		switch {
		case m.HomeScore > m.AwayScore:
			result.WinnerID = m.HomeTeamID
			result.LoserID = m.AwayTeamID
		case m.AwayScore > m.HomeScore:
			result.WinnerID = m.AwayTeamID
			result.LoserID = m.HomeTeamID
		}
		results = append(results, result)
	}

	if week >= l.CurrentWeek {
		l.CurrentWeek = week + 1
	}
	if week == l.Weeks() {
		l.Status = StatusCompleted
	}
	return results, nil
}
