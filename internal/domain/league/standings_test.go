package league

import "testing"

func TestTeamRecordsRecountCompletedMatchups(t *testing.T) {
	item := newFormingLeague(t, "T0", "T1", "T2", "T3")
	if err := item.GenerateSchedule(3); err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}

	scores := map[string]float64{"T0": 120.5, "T1": 80, "T2": 60, "T3": 99.5}
	if _, err := item.ApplyWeekScores(1, scores); err != nil {
		t.Fatalf("ApplyWeekScores error: %v", err)
	}

	records := item.TeamRecords()
	if rec := records["T0"]; rec.Wins != 1 || rec.Losses != 0 || rec.TotalPoints != 120.5 {
		t.Fatalf("unexpected T0 record: %+v", rec)
	}
	if rec := records["T3"]; rec.Wins != 0 || rec.Losses != 1 || rec.TotalPoints != 99.5 {
		t.Fatalf("unexpected T3 record: %+v", rec)
	}

	// Re-settling the same week must not inflate the recount.
	if _, err := item.ApplyWeekScores(1, scores); err != nil {
		t.Fatalf("ApplyWeekScores error: %v", err)
	}
	again := item.TeamRecords()
	for teamID, rec := range records {
		if again[teamID] != rec {
			t.Fatalf("record for %s changed on re-settle: %+v vs %+v", teamID, again[teamID], rec)
		}
	}
}

func TestTeamRecordsZeroForUnplayedTeams(t *testing.T) {
	item := newFormingLeague(t, "T0", "T1")

	records := item.TeamRecords()
	if len(records) != 2 {
		t.Fatalf("unexpected record count: got=%d want=2", len(records))
	}
	if rec := records["T1"]; rec.TeamID != "T1" || rec.Wins != 0 || rec.TotalPoints != 0 {
		t.Fatalf("unexpected zero record: %+v", rec)
	}
}

func TestComputeStandings(t *testing.T) {
	records := []TeamRecord{
		{TeamID: "T0", Wins: 1, Losses: 2, TotalPoints: 200},
		{TeamID: "T1", Wins: 3, Losses: 0, TotalPoints: 310.5},
		{TeamID: "T2", Wins: 1, Losses: 2, TotalPoints: 250},
		{TeamID: "T3", Wins: 1, Losses: 2, TotalPoints: 250},
	}

	got := ComputeStandings(records)

	wantOrder := []string{"T1", "T2", "T3", "T0"}
	wantRanks := []int{1, 2, 2, 4}
	for idx := range got {
		if got[idx].TeamID != wantOrder[idx] {
			t.Fatalf("unexpected order at %d: got=%s want=%s", idx, got[idx].TeamID, wantOrder[idx])
		}
		if got[idx].Rank != wantRanks[idx] {
			t.Fatalf("unexpected rank for %s: got=%d want=%d", got[idx].TeamID, got[idx].Rank, wantRanks[idx])
		}
	}
}

func TestComputeStandingsWinsBeforePoints(t *testing.T) {
	records := []TeamRecord{
		{TeamID: "low-wins-high-points", Wins: 1, TotalPoints: 999},
		{TeamID: "high-wins-low-points", Wins: 2, TotalPoints: 10},
	}

	got := ComputeStandings(records)
	if got[0].TeamID != "high-wins-low-points" {
		t.Fatalf("wins must order before points, got %+v", got)
	}
}

func TestComputeStandingsDoesNotMutateInput(t *testing.T) {
	records := []TeamRecord{
		{TeamID: "T0", Wins: 0},
		{TeamID: "T1", Wins: 5},
	}

	ComputeStandings(records)
	if records[0].TeamID != "T0" {
		t.Fatalf("input slice was reordered")
	}
}
