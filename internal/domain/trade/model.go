package trade

import (
	"errors"
	"time"
)

// Status tracks a trade proposal's lifecycle. Only pending trades can be
// accepted, rejected, or cancelled.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var (
	ErrNotPending     = errors.New("trade is no longer pending")
	ErrEmptyTrade     = errors.New("trade must move at least one player")
	ErrSameTeam       = errors.New("trade must involve two different teams")
	ErrPlayerNotOwned = errors.New("trade references a player the team does not own")
)

// Trade proposes swapping players between two teams in the same league.
// OfferedPlayerIDs leave the proposing team; RequestedPlayerIDs leave the
// receiving team.
type Trade struct {
	ID                 string
	LeagueID           string
	ProposingTeamID    string
	ReceivingTeamID    string
	OfferedPlayerIDs   []string
	RequestedPlayerIDs []string
	Status             Status
	CreatedAt          time.Time
	ResolvedAt         time.Time
}

func (t Trade) Validate() error {
	if t.ProposingTeamID == t.ReceivingTeamID {
		return ErrSameTeam
	}
	if len(t.OfferedPlayerIDs) == 0 && len(t.RequestedPlayerIDs) == 0 {
		return ErrEmptyTrade
	}
	return nil
}

func (t *Trade) resolve(status Status, now time.Time) error {
	if t.Status != StatusPending {
		return ErrNotPending
	}
	t.Status = status
	t.ResolvedAt = now
	return nil
}

func (t *Trade) Accept(now time.Time) error { return t.resolve(StatusAccepted, now) }
func (t *Trade) Reject(now time.Time) error { return t.resolve(StatusRejected, now) }
func (t *Trade) Cancel(now time.Time) error { return t.resolve(StatusCancelled, now) }

func (t Trade) Clone() Trade {
	copied := t
	if t.OfferedPlayerIDs != nil {
		copied.OfferedPlayerIDs = append([]string(nil), t.OfferedPlayerIDs...)
	}
	if t.RequestedPlayerIDs != nil {
		copied.RequestedPlayerIDs = append([]string(nil), t.RequestedPlayerIDs...)
	}
	return copied
}
