package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/player"
)

func TestAddPlayerFillsRoleThenFlexThenBench(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())

	slot, err := team.AddPlayer("mid-1", player.RoleMid)
	if err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
	if slot != SlotMid {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, SlotMid)
	}

	slot, err = team.AddPlayer("mid-2", player.RoleMid)
	if err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
	if slot != SlotFlex {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, SlotFlex)
	}

	slot, err = team.AddPlayer("mid-3", player.RoleMid)
	if err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
	if slot != SlotBench {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, SlotBench)
	}
}

func TestAddPlayerRosterFull(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())

	// Mid slot, flex, and the full bench.
	for idx, id := range []string{"m1", "m2", "m3", "m4", "m5"} {
		if _, err := team.AddPlayer(id, player.RoleMid); err != nil {
			t.Fatalf("AddPlayer %d error: %v", idx, err)
		}
	}

	before := team.Clone()
	if _, err := team.AddPlayer("m6", player.RoleMid); !errors.Is(err, ErrRosterFull) {
		t.Fatalf("expected ErrRosterFull, got %v", err)
	}
	if len(team.Bench) != len(before.Bench) || len(team.Starters) != len(before.Starters) {
		t.Fatalf("roster changed on failed add")
	}
}

func TestAddPlayerDuplicate(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())

	if _, err := team.AddPlayer("p1", player.RoleTop); err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
	if _, err := team.AddPlayer("p1", player.RoleTop); !errors.Is(err, ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
}

func TestAddPlayerUnknownRole(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())
	if _, err := team.AddPlayer("p1", player.Role("COACH")); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestAddPlayerToSlotBenchWhileStartersOpen(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())

	// An explicit bench request wins even with the mid slot wide open.
	slot, err := team.AddPlayerToSlot("mid-1", player.RoleMid, SlotBench)
	if err != nil {
		t.Fatalf("AddPlayerToSlot error: %v", err)
	}
	if slot != SlotBench {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, SlotBench)
	}
	if _, taken := team.Starters[SlotMid]; taken {
		t.Fatalf("mid slot filled by a bench request")
	}

	if _, err := team.AddPlayerToSlot("mid-2", player.RoleMid, SlotBench); err != nil {
		t.Fatalf("AddPlayerToSlot error: %v", err)
	}
	if _, err := team.AddPlayerToSlot("mid-3", player.RoleMid, SlotBench); err != nil {
		t.Fatalf("AddPlayerToSlot error: %v", err)
	}
	if _, err := team.AddPlayerToSlot("mid-4", player.RoleMid, SlotBench); !errors.Is(err, ErrBenchFull) {
		t.Fatalf("expected ErrBenchFull, got %v", err)
	}
}

func TestAddPlayerToSlotFlexTakesAnyRole(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())

	slot, err := team.AddPlayerToSlot("sup-1", player.RoleSupport, SlotFlex)
	if err != nil {
		t.Fatalf("AddPlayerToSlot error: %v", err)
	}
	if slot != SlotFlex {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, SlotFlex)
	}

	if _, err := team.AddPlayerToSlot("top-1", player.RoleTop, SlotFlex); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestAddPlayerToSlotRoleGuards(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())

	if _, err := team.AddPlayerToSlot("adc-1", player.RoleADC, SlotMid); !errors.Is(err, ErrSlotRoleMismatch) {
		t.Fatalf("expected ErrSlotRoleMismatch, got %v", err)
	}
	if _, err := team.AddPlayerToSlot("adc-1", player.RoleADC, Slot("GOALIE")); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if _, err := team.AddPlayerToSlot("adc-1", player.Role("COACH"), SlotADC); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if len(team.Starters) != 0 || len(team.Bench) != 0 {
		t.Fatalf("roster changed on failed add")
	}

	if _, err := team.AddPlayerToSlot("adc-1", player.RoleADC, SlotADC); err != nil {
		t.Fatalf("AddPlayerToSlot error: %v", err)
	}
	if _, err := team.AddPlayerToSlot("adc-2", player.RoleADC, SlotADC); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if _, err := team.AddPlayerToSlot("adc-1", player.RoleADC, SlotBench); !errors.Is(err, ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
}

func TestRemovePlayer(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())
	team.AddPlayer("p1", player.RoleJungle)
	team.AddPlayer("p2", player.RoleJungle)
	team.AddPlayer("p3", player.RoleJungle)

	slot, err := team.RemovePlayer("p3")
	if err != nil {
		t.Fatalf("RemovePlayer error: %v", err)
	}
	if slot != SlotBench {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, SlotBench)
	}
	if team.HasPlayer("p3") {
		t.Fatalf("player still on roster after removal")
	}

	if _, err := team.RemovePlayer("p3"); !errors.Is(err, ErrPlayerNotOnRoster) {
		t.Fatalf("expected ErrPlayerNotOnRoster, got %v", err)
	}
}

func TestActivePlayerIDsExcludesBench(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())
	team.AddPlayer("top-1", player.RoleTop)
	team.AddPlayer("mid-1", player.RoleMid)
	team.AddPlayer("mid-2", player.RoleMid)
	team.AddPlayer("mid-3", player.RoleMid)

	active := team.ActivePlayerIDs()
	if len(active) != 3 {
		t.Fatalf("unexpected active count: got=%d want=3", len(active))
	}
	for _, id := range active {
		if id == "mid-3" {
			t.Fatalf("bench player counted as active")
		}
	}

	all := team.AllPlayerIDs()
	if len(all) != 4 {
		t.Fatalf("unexpected roster size: got=%d want=4", len(all))
	}
}

func TestCloneIsolation(t *testing.T) {
	team := NewTeam("t1", "l1", "u1", "Rift Raiders", time.Now().UTC())
	team.AddPlayer("p1", player.RoleADC)
	team.AddPlayer("p2", player.RoleADC)
	team.AddPlayer("p3", player.RoleADC)

	copied := team.Clone()
	copied.Starters[SlotADC] = "other"
	copied.Bench[0] = "other"

	if team.Starters[SlotADC] != "p1" || team.Bench[0] != "p3" {
		t.Fatalf("clone shares state with original")
	}
}
