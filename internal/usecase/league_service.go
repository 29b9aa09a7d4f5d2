package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riftlabs/fantasy-esports/internal/domain/league"
	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/region"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
	idgen "github.com/riftlabs/fantasy-esports/internal/platform/id"
)

// rescoreWorkers bounds concurrent league rescores after a stats
// refresh.
const rescoreWorkers = 4

// keyedMutex serializes mutations per league so concurrent joins and
// score runs against the same league never interleave.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	item, ok := k.locks[key]
	if !ok {
		item = &sync.Mutex{}
		k.locks[key] = item
	}
	k.mu.Unlock()

	item.Lock()
	return item.Unlock
}

// CreateLeagueInput is the incoming payload for league creation.
type CreateLeagueInput struct {
	Name           string
	CommissionerID string
	Region         string
	MaxTeams       int
}

// JoinLeagueInput enrolls a user into a league with a new team.
type JoinLeagueInput struct {
	LeagueID string
	OwnerID  string
	TeamName string
}

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   roster.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time
	leagueLock keyedMutex
	onChange   func(leagueID string)
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo roster.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	logger *slog.Logger,
) *LeagueService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// SetChangeListener registers a hook invoked after any league mutation,
// used to drop cached league views.
func (s *LeagueService) SetChangeListener(fn func(leagueID string)) {
	s.onChange = fn
}

func (s *LeagueService) notifyChange(leagueID string) {
	if s.onChange != nil {
		s.onChange(leagueID)
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.CommissionerID = strings.TrimSpace(input.CommissionerID)
	input.Region = strings.ToUpper(strings.TrimSpace(input.Region))

	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.CommissionerID == "" {
		return league.League{}, fmt.Errorf("%w: commissioner id is required", ErrInvalidInput)
	}
	if !region.Known(input.Region) {
		return league.League{}, fmt.Errorf("%w: unknown region %q", ErrInvalidInput, input.Region)
	}
	if input.MaxTeams < 2 {
		return league.League{}, fmt.Errorf("%w: league needs room for at least two teams", ErrInvalidInput)
	}
	if input.MaxTeams%2 != 0 {
		return league.League{}, fmt.Errorf("%w: max teams must be even", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	item := league.New(id, input.Name, input.CommissionerID, input.Region, input.MaxTeams, s.now().UTC())
	if err := s.leagueRepo.Create(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created",
		slog.String("leagueID", item.ID),
		slog.String("region", item.Region),
		slog.Int("maxTeams", item.MaxTeams),
	)
	s.notifyChange(item.ID)
	return item, nil
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	return s.getLeague(ctx, leagueID)
}

func (s *LeagueService) getLeague(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
	}
	return item, nil
}

// JoinLeague creates a team for the user and registers it with the
// league. One team per user per league.
func (s *LeagueService) JoinLeague(ctx context.Context, input JoinLeagueInput) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinLeague")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.TeamName = strings.TrimSpace(input.TeamName)

	if input.OwnerID == "" {
		return roster.Team{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if input.TeamName == "" {
		return roster.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	unlock := s.leagueLock.lock(input.LeagueID)
	defer unlock()

	item, err := s.getLeague(ctx, input.LeagueID)
	if err != nil {
		return roster.Team{}, err
	}

	_, exists, err := s.teamRepo.GetByLeagueAndOwner(ctx, item.ID, input.OwnerID)
	if err != nil {
		return roster.Team{}, fmt.Errorf("get team by owner: %w", err)
	}
	if exists {
		return roster.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, league.ErrAlreadyMember)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return roster.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	team := roster.NewTeam(teamID, item.ID, input.OwnerID, input.TeamName, s.now().UTC())
	if err := item.AddTeam(team.ID); err != nil {
		return roster.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return roster.Team{}, fmt.Errorf("create team: %w", err)
	}
	item.UpdatedAt = team.CreatedAt
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		return roster.Team{}, fmt.Errorf("update league: %w", err)
	}

	s.logger.InfoContext(ctx, "team joined league",
		slog.String("leagueID", item.ID),
		slog.String("teamID", team.ID),
		slog.String("ownerID", team.OwnerID),
	)
	s.notifyChange(item.ID)
	return team, nil
}

// GenerateSchedule builds the round-robin schedule over the requested
// number of weeks; zero weeks means one full round robin. Commissioner
// only.
func (s *LeagueService) GenerateSchedule(ctx context.Context, leagueID, actorID string, weeks int) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GenerateSchedule")
	defer span.End()

	if weeks < 0 {
		return league.League{}, fmt.Errorf("%w: weeks must be positive", ErrInvalidInput)
	}

	unlock := s.leagueLock.lock(strings.TrimSpace(leagueID))
	defer unlock()

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if item.CommissionerID != strings.TrimSpace(actorID) {
		return league.League{}, fmt.Errorf("%w: only the commissioner can generate the schedule", ErrForbidden)
	}

	if weeks == 0 {
		weeks = len(item.TeamIDs) - 1
	}
	if err := item.GenerateSchedule(weeks); err != nil {
		return league.League{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	item.UpdatedAt = s.now().UTC()
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	s.logger.InfoContext(ctx, "schedule generated",
		slog.String("leagueID", item.ID),
		slog.Int("weeks", item.Weeks()),
		slog.Int("teams", len(item.TeamIDs)),
	)
	s.notifyChange(item.ID)
	return item, nil
}

// CalculateWeekScores sums each team's active-slot player points for the
// week, settles the week's matchups, and updates team records.
// Commissioner only.
func (s *LeagueService) CalculateWeekScores(ctx context.Context, leagueID string, week int, actorID string) ([]league.MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CalculateWeekScores")
	defer span.End()

	if week < 1 {
		return nil, fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}

	unlock := s.leagueLock.lock(strings.TrimSpace(leagueID))
	defer unlock()

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if item.CommissionerID != strings.TrimSpace(actorID) {
		return nil, fmt.Errorf("%w: only the commissioner can score a week", ErrForbidden)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	scoresByTeam := make(map[string]float64, len(teams))
	for _, team := range teams {
		total, err := s.weekScore(ctx, team, week)
		if err != nil {
			return nil, err
		}
		scoresByTeam[team.ID] = total
	}

	results, err := item.ApplyWeekScores(week, scoresByTeam)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	applyTeamRecords(item, teams, now)
	item.UpdatedAt = now
	if err := s.teamRepo.UpdateMany(ctx, teams); err != nil {
		return nil, fmt.Errorf("update teams: %w", err)
	}
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update league: %w", err)
	}

	s.logger.InfoContext(ctx, "week scored",
		slog.String("leagueID", item.ID),
		slog.Int("week", week),
		slog.Int("matchups", len(results)),
	)
	s.notifyChange(item.ID)
	return results, nil
}

// applyTeamRecords rebuilds every team's win/loss record and points
// from the league's completed matchups.
func applyTeamRecords(item league.League, teams []roster.Team, now time.Time) {
	records := item.TeamRecords()
	for idx := range teams {
		team := &teams[idx]
		record := records[team.ID]
		team.Wins = record.Wins
		team.Losses = record.Losses
		team.TotalPoints = record.TotalPoints
		team.UpdatedAt = now
	}
}

// RescoreActiveLeagues recomputes current-week scores and team records
// for every active league, fanned out over a bounded worker pool. Runs
// after a stats refresh lands new player lines, so standings track the
// latest data without waiting for the commissioner to settle a week.
func (s *LeagueService) RescoreActiveLeagues(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.RescoreActiveLeagues")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list leagues: %w", err)
	}

	workers, err := ants.NewPool(rescoreWorkers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	for _, item := range items {
		if item.Status != league.StatusActive {
			continue
		}
		leagueID := item.ID
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			if err := s.rescoreLeague(ctx, leagueID); err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit to worker pool: %w", err)
		}
	}
	wg.Wait()

	return firstErr
}

// rescoreLeague refreshes one league's provisional current-week scores
// and recounts records under the league lock. Completed matchups keep
// their settled scores.
func (s *LeagueService) rescoreLeague(ctx context.Context, leagueID string) error {
	unlock := s.leagueLock.lock(leagueID)
	defer unlock()

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return err
	}
	if item.Status != league.StatusActive {
		return nil
	}

	teams, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}

	scoresByTeam := make(map[string]float64, len(teams))
	for _, team := range teams {
		total, err := s.weekScore(ctx, team, item.CurrentWeek)
		if err != nil {
			return err
		}
		scoresByTeam[team.ID] = total
	}

	if err := item.SetProvisionalScores(item.CurrentWeek, scoresByTeam); err != nil {
		return fmt.Errorf("set provisional scores for league %s: %w", item.ID, err)
	}

	now := s.now().UTC()
	applyTeamRecords(item, teams, now)
	item.UpdatedAt = now
	if err := s.teamRepo.UpdateMany(ctx, teams); err != nil {
		return fmt.Errorf("update teams: %w", err)
	}
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("update league: %w", err)
	}

	s.logger.InfoContext(ctx, "league rescored",
		slog.String("leagueID", item.ID),
		slog.Int("week", item.CurrentWeek),
	)
	s.notifyChange(item.ID)
	return nil
}

// weekScore sums one team's active-slot player points for a week.
func (s *LeagueService) weekScore(ctx context.Context, team roster.Team, week int) (float64, error) {
	activeIDs := team.ActivePlayerIDs()
	if len(activeIDs) == 0 {
		return 0, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, activeIDs)
	if err != nil {
		return 0, fmt.Errorf("get players for team %s: %w", team.ID, err)
	}

	total := 0.0
	for _, p := range players {
		total += p.WeekPoints(week)
	}
	return total, nil
}

// Standings ranks the league's teams by wins, then total points.
func (s *LeagueService) Standings(ctx context.Context, leagueID string) ([]league.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Standings")
	defer span.End()

	item, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	records := make([]league.TeamRecord, 0, len(teams))
	for _, team := range teams {
		records = append(records, league.TeamRecord{
			TeamID:      team.ID,
			Wins:        team.Wins,
			Losses:      team.Losses,
			TotalPoints: team.TotalPoints,
		})
	}
	return league.ComputeStandings(records), nil
}
