package league

import (
	"errors"
	"time"
)

// Status tracks a league's lifecycle. Joining is only possible while
// forming; generating a schedule moves the league to active.
type Status string

const (
	StatusForming   Status = "forming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var (
	ErrLeagueFull       = errors.New("league is full")
	ErrAlreadyStarted   = errors.New("league has already started")
	ErrAlreadyMember    = errors.New("user already has a team in league")
	ErrOddTeamCount     = errors.New("league needs an even number of teams")
	ErrNotEnoughTeams   = errors.New("league needs at least two teams")
	ErrInvalidWeekCount = errors.New("season needs at least one week")
	ErrScheduleNotSet   = errors.New("league schedule has not been generated")
	ErrWeekOutOfRange   = errors.New("week is outside the schedule")
	ErrUnknownTeamScore = errors.New("score references a team outside the league")
)

// Matchup is one head-to-head pairing in the season schedule.
type Matchup struct {
	ID         string
	Week       int
	HomeTeamID string
	AwayTeamID string
	HomeScore  float64
	AwayScore  float64
	Completed  bool
}

// League groups fantasy teams under one commissioner and region.
type League struct {
	ID             string
	Name           string
	CommissionerID string
	Region         string
	MaxTeams       int
	TeamIDs        []string
	Schedule       []Matchup
	CurrentWeek    int
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func New(id, name, commissionerID, region string, maxTeams int, now time.Time) League {
	return League{
		ID:             id,
		Name:           name,
		CommissionerID: commissionerID,
		Region:         region,
		MaxTeams:       maxTeams,
		Status:         StatusForming,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AddTeam registers a team while the league is forming.
func (l *League) AddTeam(teamID string) error {
	if l.Status != StatusForming {
		return ErrAlreadyStarted
	}
	if len(l.TeamIDs) >= l.MaxTeams {
		return ErrLeagueFull
	}
	for _, id := range l.TeamIDs {
		if id == teamID {
			return ErrAlreadyMember
		}
	}

	l.TeamIDs = append(l.TeamIDs, teamID)
	return nil
}

func (l League) HasTeam(teamID string) bool {
	for _, id := range l.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

// Weeks returns the number of scheduled weeks.
func (l League) Weeks() int {
	weeks := 0
	for _, m := range l.Schedule {
		if m.Week > weeks {
			weeks = m.Week
		}
	}
	return weeks
}

func (l League) Clone() League {
	copied := l
	if l.TeamIDs != nil {
		copied.TeamIDs = append([]string(nil), l.TeamIDs...)
	}
	if l.Schedule != nil {
		copied.Schedule = append([]Matchup(nil), l.Schedule...)
	}
	return copied
}
