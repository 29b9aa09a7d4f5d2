package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
)

func TestTeamService_AddPlayer(t *testing.T) {
	t.Parallel()

	f := newFixtures()
	service := f.teamService()
	f.seedLeague(t, "l1", "commish", "LCK", 4)
	f.seedTeam(t, "t1", "l1", "owner")
	f.seedPlayer(t, "mid-1", "LCK", player.RoleMid)
	f.seedPlayer(t, "mid-2", "LCK", player.RoleMid)
	f.seedPlayer(t, "lec-mid", "LEC", player.RoleMid)

	_, slot, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "mid-1",
	})
	if err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
	if slot != roster.SlotMid {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, roster.SlotMid)
	}

	// Second mid lands in flex.
	_, slot, err = service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "mid-2",
	})
	if err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
	if slot != roster.SlotFlex {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, roster.SlotFlex)
	}

	if _, _, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "intruder", PlayerID: "mid-1",
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, _, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "mid-1",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate, got %v", err)
	}

	// LEC player is outside the LCK league's pool.
	if _, _, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "lec-mid",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-region player, got %v", err)
	}

	if _, _, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "ghost",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_AddPlayerToRequestedSlot(t *testing.T) {
	t.Parallel()

	f := newFixtures()
	service := f.teamService()
	f.seedLeague(t, "l1", "commish", "LCK", 4)
	f.seedTeam(t, "t1", "l1", "owner")
	f.seedPlayer(t, "mid-1", "LCK", player.RoleMid)
	f.seedPlayer(t, "mid-2", "LCK", player.RoleMid)

	// Explicit bench request sticks even with the mid slot open.
	team, slot, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "mid-1", Slot: "bench",
	})
	if err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
	if slot != roster.SlotBench {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, roster.SlotBench)
	}
	if _, taken := team.Starters[roster.SlotMid]; taken {
		t.Fatalf("mid slot filled by a bench request")
	}

	if _, _, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "mid-2", Slot: "TOP",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for role mismatch, got %v", err)
	}

	if _, _, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "mid-2", Slot: "GOALIE",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown slot, got %v", err)
	}

	_, slot, err = service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "mid-2", Slot: "FLEX",
	})
	if err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
	if slot != roster.SlotFlex {
		t.Fatalf("unexpected slot: got=%s want=%s", slot, roster.SlotFlex)
	}
}

func TestTeamService_AddPlayerRegionAlias(t *testing.T) {
	t.Parallel()

	f := newFixtures()
	service := f.teamService()
	f.seedLeague(t, "l1", "commish", "AMERICAS", 4)
	f.seedTeam(t, "t1", "l1", "owner")
	f.seedPlayer(t, "cblol-mid", "CBLOL", player.RoleMid)

	// CBLOL is part of the AMERICAS pool.
	if _, _, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "cblol-mid",
	}); err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}
}

func TestTeamService_RemovePlayer(t *testing.T) {
	t.Parallel()

	f := newFixtures()
	service := f.teamService()
	f.seedLeague(t, "l1", "commish", "LCK", 4)
	f.seedTeam(t, "t1", "l1", "owner")
	f.seedPlayer(t, "top-1", "LCK", player.RoleTop)

	if _, _, err := service.AddPlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "top-1",
	}); err != nil {
		t.Fatalf("AddPlayer error: %v", err)
	}

	if _, err := service.RemovePlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "intruder", PlayerID: "top-1",
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	team, err := service.RemovePlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "top-1",
	})
	if err != nil {
		t.Fatalf("RemovePlayer error: %v", err)
	}
	if team.HasPlayer("top-1") {
		t.Fatalf("player still on roster after removal")
	}

	if _, err := service.RemovePlayer(context.Background(), RosterMoveInput{
		TeamID: "t1", ActorID: "owner", PlayerID: "top-1",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
