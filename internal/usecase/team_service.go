package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/league"
	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/region"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
)

// RosterMoveInput adds or removes a single player on a team's roster.
// Slot directs an add into a specific position; empty means automatic
// placement.
type RosterMoveInput struct {
	TeamID   string
	ActorID  string
	PlayerID string
	Slot     string
}

type TeamService struct {
	teamRepo   roster.Repository
	leagueRepo league.Repository
	playerRepo player.Repository
	logger     *slog.Logger
	now        func() time.Time
	onChange   func(leagueID string)
}

func NewTeamService(
	teamRepo roster.Repository,
	leagueRepo league.Repository,
	playerRepo player.Repository,
	logger *slog.Logger,
) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// SetChangeListener registers a hook invoked after roster mutations.
func (s *TeamService) SetChangeListener(fn func(leagueID string)) {
	s.onChange = fn
}

func (s *TeamService) notifyChange(leagueID string) {
	if s.onChange != nil {
		s.onChange(leagueID)
	}
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	return s.getTeam(ctx, teamID)
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (roster.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return roster.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return roster.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	return team, nil
}

func (s *TeamService) ListByLeague(ctx context.Context, leagueID string) ([]roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// AddPlayer drafts a player from the league's regional pool onto the
// owner's roster. A requested slot is honored or the move fails;
// without one the player lands in the first open slot: role slot,
// then flex, then bench.
func (s *TeamService) AddPlayer(ctx context.Context, input RosterMoveInput) (roster.Team, roster.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AddPlayer")
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.PlayerID == "" {
		return roster.Team{}, "", fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	team, err := s.getTeam(ctx, input.TeamID)
	if err != nil {
		return roster.Team{}, "", err
	}
	if team.OwnerID != strings.TrimSpace(input.ActorID) {
		return roster.Team{}, "", fmt.Errorf("%w: only the team owner can change the roster", ErrForbidden)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return roster.Team{}, "", fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return roster.Team{}, "", fmt.Errorf("%w: player %s", ErrNotFound, input.PlayerID)
	}

	if err := s.ensurePlayerInLeaguePool(ctx, team.LeagueID, item); err != nil {
		return roster.Team{}, "", err
	}

	requested := roster.Slot(strings.ToUpper(strings.TrimSpace(input.Slot)))
	var slot roster.Slot
	if requested == "" {
		slot, err = team.AddPlayer(item.ID, item.Role)
	} else {
		slot, err = team.AddPlayerToSlot(item.ID, item.Role, requested)
	}
	if err != nil {
		return roster.Team{}, "", fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	team.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return roster.Team{}, "", fmt.Errorf("update team: %w", err)
	}

	s.logger.InfoContext(ctx, "player added to roster",
		slog.String("teamID", team.ID),
		slog.String("playerID", item.ID),
		slog.String("slot", string(slot)),
	)
	s.notifyChange(team.LeagueID)
	return team, slot, nil
}

// RemovePlayer drops a player from the owner's roster.
func (s *TeamService) RemovePlayer(ctx context.Context, input RosterMoveInput) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RemovePlayer")
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.PlayerID == "" {
		return roster.Team{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	team, err := s.getTeam(ctx, input.TeamID)
	if err != nil {
		return roster.Team{}, err
	}
	if team.OwnerID != strings.TrimSpace(input.ActorID) {
		return roster.Team{}, fmt.Errorf("%w: only the team owner can change the roster", ErrForbidden)
	}

	if _, err := team.RemovePlayer(input.PlayerID); err != nil {
		return roster.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	team.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return roster.Team{}, fmt.Errorf("update team: %w", err)
	}

	s.logger.InfoContext(ctx, "player removed from roster",
		slog.String("teamID", team.ID),
		slog.String("playerID", input.PlayerID),
	)
	s.notifyChange(team.LeagueID)
	return team, nil
}

func (s *TeamService) ensurePlayerInLeaguePool(ctx context.Context, leagueID string, item player.Player) error {
	leagueItem, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
	}

	for _, code := range region.Resolve(leagueItem.Region) {
		if code == item.ProLeague {
			return nil
		}
	}
	return fmt.Errorf("%w: player %s plays outside region %s", ErrInvalidInput, item.ID, leagueItem.Region)
}
