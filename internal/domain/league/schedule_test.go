package league

import (
	"errors"
	"testing"
	"time"
)

func newFormingLeague(t *testing.T, teamIDs ...string) League {
	t.Helper()
	item := New("l1", "Summoners Rift Cup", "u1", "LCK", 8, time.Now().UTC())
	for _, id := range teamIDs {
		if err := item.AddTeam(id); err != nil {
			t.Fatalf("AddTeam %s error: %v", id, err)
		}
	}
	return item
}

func TestGenerateScheduleFourTeams(t *testing.T) {
	item := newFormingLeague(t, "T0", "T1", "T2", "T3")

	if err := item.GenerateSchedule(3); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	wantPairs := map[int][][2]string{
		1: {{"T0", "T3"}, {"T1", "T2"}},
		2: {{"T0", "T2"}, {"T3", "T1"}},
		3: {{"T0", "T1"}, {"T2", "T3"}},
	}

	if item.Weeks() != 3 {
		t.Fatalf("unexpected week count: got=%d want=3", item.Weeks())
	}
	if len(item.Schedule) != 6 {
		t.Fatalf("unexpected matchup count: got=%d want=6", len(item.Schedule))
	}

	for week, pairs := range wantPairs {
		matchups, err := item.MatchupsForWeek(week)
		if err != nil {
			t.Fatalf("MatchupsForWeek %d error: %v", week, err)
		}
		if len(matchups) != len(pairs) {
			t.Fatalf("week %d: unexpected matchup count: got=%d want=%d", week, len(matchups), len(pairs))
		}
		for idx, pair := range pairs {
			if matchups[idx].HomeTeamID != pair[0] || matchups[idx].AwayTeamID != pair[1] {
				t.Fatalf("week %d matchup %d: got=%s vs %s want=%s vs %s",
					week, idx, matchups[idx].HomeTeamID, matchups[idx].AwayTeamID, pair[0], pair[1])
			}
		}
	}

	if item.Status != StatusActive {
		t.Fatalf("unexpected status: got=%s want=%s", item.Status, StatusActive)
	}
	if item.CurrentWeek != 1 {
		t.Fatalf("unexpected current week: got=%d want=1", item.CurrentWeek)
	}
}

func TestGenerateScheduleDeterministic(t *testing.T) {
	first := newFormingLeague(t, "T0", "T1", "T2", "T3", "T4", "T5")
	second := newFormingLeague(t, "T0", "T1", "T2", "T3", "T4", "T5")

	if err := first.GenerateSchedule(5); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}
	if err := second.GenerateSchedule(5); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	if len(first.Schedule) != len(second.Schedule) {
		t.Fatalf("schedule lengths differ: %d vs %d", len(first.Schedule), len(second.Schedule))
	}
	for idx := range first.Schedule {
		a, b := first.Schedule[idx], second.Schedule[idx]
		if a.Week != b.Week || a.HomeTeamID != b.HomeTeamID || a.AwayTeamID != b.AwayTeamID {
			t.Fatalf("schedules diverge at %d: %+v vs %+v", idx, a, b)
		}
	}
}

func TestGenerateScheduleEachPairOnce(t *testing.T) {
	item := newFormingLeague(t, "T0", "T1", "T2", "T3", "T4", "T5")
	if err := item.GenerateSchedule(5); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	seenPairs := make(map[string]int)
	seenPerWeek := make(map[int]map[string]bool)
	for _, m := range item.Schedule {
		lo, hi := m.HomeTeamID, m.AwayTeamID
		if lo > hi {
			lo, hi = hi, lo
		}
		seenPairs[lo+"|"+hi]++

		if seenPerWeek[m.Week] == nil {
			seenPerWeek[m.Week] = make(map[string]bool)
		}
		if seenPerWeek[m.Week][m.HomeTeamID] || seenPerWeek[m.Week][m.AwayTeamID] {
			t.Fatalf("team plays twice in week %d", m.Week)
		}
		seenPerWeek[m.Week][m.HomeTeamID] = true
		seenPerWeek[m.Week][m.AwayTeamID] = true
	}

	if len(seenPairs) != 15 {
		t.Fatalf("unexpected distinct pair count: got=%d want=15", len(seenPairs))
	}
	for pair, count := range seenPairs {
		if count != 1 {
			t.Fatalf("pair %s scheduled %d times", pair, count)
		}
	}
}

func TestGenerateScheduleErrors(t *testing.T) {
	odd := newFormingLeague(t, "T0", "T1", "T2")
	if err := odd.GenerateSchedule(3); !errors.Is(err, ErrOddTeamCount) {
		t.Fatalf("expected ErrOddTeamCount, got %v", err)
	}

	empty := newFormingLeague(t)
	if err := empty.GenerateSchedule(1); !errors.Is(err, ErrNotEnoughTeams) {
		t.Fatalf("expected ErrNotEnoughTeams, got %v", err)
	}

	zeroWeeks := newFormingLeague(t, "T0", "T1")
	if err := zeroWeeks.GenerateSchedule(0); !errors.Is(err, ErrInvalidWeekCount) {
		t.Fatalf("expected ErrInvalidWeekCount, got %v", err)
	}

	started := newFormingLeague(t, "T0", "T1")
	if err := started.GenerateSchedule(1); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}
	if err := started.GenerateSchedule(1); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestGenerateScheduleRepeatsPairingsPastRotation(t *testing.T) {
	item := newFormingLeague(t, "T0", "T1", "T2", "T3")
	if err := item.GenerateSchedule(5); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	if item.Weeks() != 5 {
		t.Fatalf("unexpected week count: got=%d want=5", item.Weeks())
	}
	if len(item.Schedule) != 10 {
		t.Fatalf("unexpected matchup count: got=%d want=10", len(item.Schedule))
	}

	// The rotation has period 3 with four teams, so week 4 replays week 1
	// and week 5 replays week 2.
	for _, weeks := range [][2]int{{4, 1}, {5, 2}} {
		later, err := item.MatchupsForWeek(weeks[0])
		if err != nil {
			t.Fatalf("MatchupsForWeek %d error: %v", weeks[0], err)
		}
		earlier, err := item.MatchupsForWeek(weeks[1])
		if err != nil {
			t.Fatalf("MatchupsForWeek %d error: %v", weeks[1], err)
		}
		for idx := range later {
			if later[idx].HomeTeamID != earlier[idx].HomeTeamID || later[idx].AwayTeamID != earlier[idx].AwayTeamID {
				t.Fatalf("week %d matchup %d does not repeat week %d: %+v vs %+v",
					weeks[0], idx, weeks[1], later[idx], earlier[idx])
			}
		}
	}
}

func TestAddTeamGuards(t *testing.T) {
	item := New("l1", "Cup", "u1", "LCK", 2, time.Now().UTC())
	if err := item.AddTeam("T0"); err != nil {
		t.Fatalf("AddTeam error: %v", err)
	}
	if err := item.AddTeam("T0"); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if err := item.AddTeam("T1"); err != nil {
		t.Fatalf("AddTeam error: %v", err)
	}
	if err := item.AddTeam("T2"); !errors.Is(err, ErrLeagueFull) {
		t.Fatalf("expected ErrLeagueFull, got %v", err)
	}

	if err := item.GenerateSchedule(1); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}
	if err := item.AddTeam("T3"); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestApplyWeekScores(t *testing.T) {
	item := newFormingLeague(t, "T0", "T1", "T2", "T3")
	if err := item.GenerateSchedule(3); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	results, err := item.ApplyWeekScores(1, map[string]float64{
		"T0": 120.5, "T1": 80, "T2": 80, "T3": 99.5,
	})
	if err != nil {
		t.Fatalf("ApplyWeekScores error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("unexpected result count: got=%d want=2", len(results))
	}

	// Week 1 pairs T0 vs T3 and T1 vs T2.
	if results[0].WinnerID != "T0" || results[0].LoserID != "T3" {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].WinnerID != "" || results[1].LoserID != "" {
		t.Fatalf("expected tie to have no winner, got %+v", results[1])
	}

	if item.CurrentWeek != 2 {
		t.Fatalf("unexpected current week: got=%d want=2", item.CurrentWeek)
	}

	matchups, err := item.MatchupsForWeek(1)
	if err != nil {
		t.Fatalf("MatchupsForWeek error: %v", err)
	}
	if !matchups[0].Completed || matchups[0].HomeScore != 120.5 {
		t.Fatalf("matchup not settled: %+v", matchups[0])
	}
}

func TestSetProvisionalScores(t *testing.T) {
	item := newFormingLeague(t, "T0", "T1", "T2", "T3")
	if err := item.GenerateSchedule(3); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	if err := item.SetProvisionalScores(1, map[string]float64{"T0": 42.5, "T3": 17}); err != nil {
		t.Fatalf("SetProvisionalScores error: %v", err)
	}

	matchups, err := item.MatchupsForWeek(1)
	if err != nil {
		t.Fatalf("MatchupsForWeek error: %v", err)
	}
	if matchups[0].HomeScore != 42.5 || matchups[0].AwayScore != 17 {
		t.Fatalf("provisional scores not written: %+v", matchups[0])
	}
	if matchups[0].Completed {
		t.Fatalf("provisional scores must not settle the matchup")
	}
	if item.CurrentWeek != 1 {
		t.Fatalf("provisional scores must not advance the week, got %d", item.CurrentWeek)
	}

	// A settled matchup keeps its score.
	if _, err := item.ApplyWeekScores(1, map[string]float64{"T0": 100, "T1": 90, "T2": 80, "T3": 70}); err != nil {
		t.Fatalf("ApplyWeekScores error: %v", err)
	}
	if err := item.SetProvisionalScores(1, map[string]float64{"T0": 1}); err != nil {
		t.Fatalf("SetProvisionalScores error: %v", err)
	}
	matchups, _ = item.MatchupsForWeek(1)
	if matchups[0].HomeScore != 100 {
		t.Fatalf("settled score overwritten: %+v", matchups[0])
	}

	if err := item.SetProvisionalScores(9, nil); !errors.Is(err, ErrWeekOutOfRange) {
		t.Fatalf("expected ErrWeekOutOfRange, got %v", err)
	}
}

func TestApplyWeekScoresErrors(t *testing.T) {
	item := newFormingLeague(t, "T0", "T1")

	if _, err := item.ApplyWeekScores(1, nil); !errors.Is(err, ErrScheduleNotSet) {
		t.Fatalf("expected ErrScheduleNotSet, got %v", err)
	}

	if err := item.GenerateSchedule(1); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	if _, err := item.ApplyWeekScores(5, map[string]float64{"T0": 1, "T1": 2}); !errors.Is(err, ErrWeekOutOfRange) {
		t.Fatalf("expected ErrWeekOutOfRange, got %v", err)
	}
	if _, err := item.ApplyWeekScores(1, map[string]float64{"T0": 1}); !errors.Is(err, ErrUnknownTeamScore) {
		t.Fatalf("expected ErrUnknownTeamScore, got %v", err)
	}

	// Final week completes the league.
	if _, err := item.ApplyWeekScores(1, map[string]float64{"T0": 1, "T1": 2}); err != nil {
		t.Fatalf("ApplyWeekScores error: %v", err)
	}
	if item.Status != StatusCompleted {
		t.Fatalf("unexpected status: got=%s want=%s", item.Status, StatusCompleted)
	}
}
