package roster

import (
	"errors"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/player"
)

// BenchCapacity caps the number of non-starting players a team may hold.
const BenchCapacity = 3

var (
	ErrRosterFull         = errors.New("roster has no open slot for player")
	ErrDuplicatePlayer    = errors.New("player already on roster")
	ErrPlayerNotOnRoster  = errors.New("player not on roster")
	ErrUnknownRole        = errors.New("unknown player role")
	ErrUnknownSlot        = errors.New("unknown roster slot")
	ErrSlotRoleMismatch   = errors.New("player role does not match slot")
	ErrSlotTaken          = errors.New("slot is already occupied")
	ErrBenchFull          = errors.New("bench is full")
	ErrInvalidRosterState = errors.New("invalid roster state")
)

// Slot identifies a roster position. Each role has exactly one starting
// slot; FLEX accepts any role; BENCH players never score.
type Slot string

const (
	SlotTop     Slot = "TOP"
	SlotJungle  Slot = "JUNGLE"
	SlotMid     Slot = "MID"
	SlotADC     Slot = "ADC"
	SlotSupport Slot = "SUPPORT"
	SlotFlex    Slot = "FLEX"
	SlotBench   Slot = "BENCH"
)

// StarterSlots lists the scoring slots in presentation order.
var StarterSlots = []Slot{SlotTop, SlotJungle, SlotMid, SlotADC, SlotSupport, SlotFlex}

func slotForRole(role player.Role) (Slot, bool) {
	switch role {
	case player.RoleTop:
		return SlotTop, true
	case player.RoleJungle:
		return SlotJungle, true
	case player.RoleMid:
		return SlotMid, true
	case player.RoleADC:
		return SlotADC, true
	case player.RoleSupport:
		return SlotSupport, true
	default:
		return "", false
	}
}

// Team is a fantasy roster owned by one league member.
type Team struct {
	ID          string
	LeagueID    string
	OwnerID     string
	Name        string
	Starters    map[Slot]string
	Bench       []string
	Wins        int
	Losses      int
	TotalPoints float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewTeam(id, leagueID, ownerID, name string, now time.Time) Team {
	return Team{
		ID:        id,
		LeagueID:  leagueID,
		OwnerID:   ownerID,
		Name:      name,
		Starters:  make(map[Slot]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddPlayer places the player into the first open slot: the role's own
// starting slot, then FLEX, then the bench. On failure the roster is
// unchanged.
func (t *Team) AddPlayer(playerID string, role player.Role) (Slot, error) {
	roleSlot, ok := slotForRole(role)
	if !ok {
		return "", ErrUnknownRole
	}
	if t.HasPlayer(playerID) {
		return "", ErrDuplicatePlayer
	}

	if t.Starters == nil {
		t.Starters = make(map[Slot]string)
	}
	if _, taken := t.Starters[roleSlot]; !taken {
		t.Starters[roleSlot] = playerID
		return roleSlot, nil
	}
	if _, taken := t.Starters[SlotFlex]; !taken {
		t.Starters[SlotFlex] = playerID
		return SlotFlex, nil
	}
	if len(t.Bench) < BenchCapacity {
		t.Bench = append(t.Bench, playerID)
		return SlotBench, nil
	}

	return "", ErrRosterFull
}

// AddPlayerToSlot places the player into the requested slot. The bench
// accepts any role up to BenchCapacity, FLEX accepts any role while
// empty, and positional slots demand an exact role match. On failure
// the roster is unchanged.
func (t *Team) AddPlayerToSlot(playerID string, role player.Role, slot Slot) (Slot, error) {
	roleSlot, ok := slotForRole(role)
	if !ok {
		return "", ErrUnknownRole
	}
	if t.HasPlayer(playerID) {
		return "", ErrDuplicatePlayer
	}

	switch slot {
	case SlotBench:
		if len(t.Bench) >= BenchCapacity {
			return "", ErrBenchFull
		}
		t.Bench = append(t.Bench, playerID)
		return SlotBench, nil
	case SlotFlex:
	case SlotTop, SlotJungle, SlotMid, SlotADC, SlotSupport:
		if slot != roleSlot {
			return "", ErrSlotRoleMismatch
		}
	default:
		return "", ErrUnknownSlot
	}

	if t.Starters == nil {
		t.Starters = make(map[Slot]string)
	}
	if _, taken := t.Starters[slot]; taken {
		return "", ErrSlotTaken
	}
	t.Starters[slot] = playerID
	return slot, nil
}

// RemovePlayer drops the player from whichever slot holds them.
func (t *Team) RemovePlayer(playerID string) (Slot, error) {
	for slot, id := range t.Starters {
		if id == playerID {
			delete(t.Starters, slot)
			return slot, nil
		}
	}
	for idx, id := range t.Bench {
		if id == playerID {
			t.Bench = append(t.Bench[:idx], t.Bench[idx+1:]...)
			return SlotBench, nil
		}
	}

	return "", ErrPlayerNotOnRoster
}

func (t Team) HasPlayer(playerID string) bool {
	for _, id := range t.Starters {
		if id == playerID {
			return true
		}
	}
	for _, id := range t.Bench {
		if id == playerID {
			return true
		}
	}
	return false
}

// ActivePlayerIDs returns the players whose points count toward the
// team's weekly score. Bench players are excluded.
func (t Team) ActivePlayerIDs() []string {
	out := make([]string, 0, len(t.Starters))
	for _, slot := range StarterSlots {
		if id, ok := t.Starters[slot]; ok {
			out = append(out, id)
		}
	}
	return out
}

// AllPlayerIDs returns every rostered player, starters first.
func (t Team) AllPlayerIDs() []string {
	out := t.ActivePlayerIDs()
	return append(out, t.Bench...)
}

func (t Team) Clone() Team {
	copied := t
	if t.Starters != nil {
		copied.Starters = make(map[Slot]string, len(t.Starters))
		for slot, id := range t.Starters {
			copied.Starters[slot] = id
		}
	}
	if t.Bench != nil {
		copied.Bench = append([]string(nil), t.Bench...)
	}
	return copied
}
