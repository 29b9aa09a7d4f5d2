package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/league"
	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
	"github.com/riftlabs/fantasy-esports/internal/infrastructure/repository/memory"
)

// seqIDGenerator hands out deterministic ids for tests.
type seqIDGenerator struct {
	prefix string
	next   int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

type fixtures struct {
	userRepo    *memory.UserRepository
	playerRepo  *memory.PlayerRepository
	leagueRepo  *memory.LeagueRepository
	teamRepo    *memory.TeamRepository
	tradeRepo   *memory.TradeRepository
	messageRepo *memory.MessageRepository
	requestRepo *memory.FriendRequestRepository
	logger      *slog.Logger
}

func newFixtures() *fixtures {
	return &fixtures{
		userRepo:    memory.NewUserRepository(),
		playerRepo:  memory.NewPlayerRepository(),
		leagueRepo:  memory.NewLeagueRepository(),
		teamRepo:    memory.NewTeamRepository(),
		tradeRepo:   memory.NewTradeRepository(),
		messageRepo: memory.NewMessageRepository(),
		requestRepo: memory.NewFriendRequestRepository(),
		logger:      slog.New(slog.DiscardHandler),
	}
}

func (f *fixtures) leagueService() *LeagueService {
	return NewLeagueService(f.leagueRepo, f.teamRepo, f.playerRepo, &seqIDGenerator{prefix: "lg"}, f.logger)
}

func (f *fixtures) teamService() *TeamService {
	return NewTeamService(f.teamRepo, f.leagueRepo, f.playerRepo, f.logger)
}

func (f *fixtures) tradeService() *TradeService {
	return NewTradeService(f.tradeRepo, f.teamRepo, f.playerRepo, &seqIDGenerator{prefix: "tr"}, f.logger)
}

func (f *fixtures) seedPlayer(t *testing.T, id, proLeague string, role player.Role) player.Player {
	t.Helper()
	item := player.Player{
		ID:        id,
		Handle:    id,
		ProTeam:   "TEAM",
		ProLeague: proLeague,
		Role:      role,
	}
	if err := f.playerRepo.Upsert(context.Background(), item); err != nil {
		t.Fatalf("seed player %s: %v", id, err)
	}
	return item
}

func (f *fixtures) seedLeague(t *testing.T, id, commissionerID, regionCode string, maxTeams int) league.League {
	t.Helper()
	item := league.New(id, "League "+id, commissionerID, regionCode, maxTeams, time.Now().UTC())
	if err := f.leagueRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed league %s: %v", id, err)
	}
	return item
}

func (f *fixtures) seedTeam(t *testing.T, id, leagueID, ownerID string) roster.Team {
	t.Helper()
	item := roster.NewTeam(id, leagueID, ownerID, "Team "+id, time.Now().UTC())
	if err := f.teamRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed team %s: %v", id, err)
	}

	leagueItem, ok, err := f.leagueRepo.GetByID(context.Background(), leagueID)
	if err != nil || !ok {
		t.Fatalf("seed team %s: league %s missing (err=%v)", id, leagueID, err)
	}
	if err := leagueItem.AddTeam(id); err != nil {
		t.Fatalf("seed team %s: %v", id, err)
	}
	if err := f.leagueRepo.Update(context.Background(), leagueItem); err != nil {
		t.Fatalf("seed team %s: %v", id, err)
	}
	return item
}
