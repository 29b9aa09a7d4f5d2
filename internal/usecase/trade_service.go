package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
	"github.com/riftlabs/fantasy-esports/internal/domain/trade"
	idgen "github.com/riftlabs/fantasy-esports/internal/platform/id"
)

// ProposeTradeInput opens a trade between the actor's team and another
// team in the same league.
type ProposeTradeInput struct {
	ActorID            string
	ProposingTeamID    string
	ReceivingTeamID    string
	OfferedPlayerIDs   []string
	RequestedPlayerIDs []string
}

type TradeService struct {
	tradeRepo  trade.Repository
	teamRepo   roster.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time
	onChange   func(leagueID string)
}

func NewTradeService(
	tradeRepo trade.Repository,
	teamRepo roster.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	logger *slog.Logger,
) *TradeService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TradeService{
		tradeRepo:  tradeRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// SetChangeListener registers a hook invoked after an accepted trade
// changes rosters.
func (s *TradeService) SetChangeListener(fn func(leagueID string)) {
	s.onChange = fn
}

func (s *TradeService) Propose(ctx context.Context, input ProposeTradeInput) (trade.Trade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Propose")
	defer span.End()

	proposing, err := s.getTeam(ctx, input.ProposingTeamID)
	if err != nil {
		return trade.Trade{}, err
	}
	if proposing.OwnerID != strings.TrimSpace(input.ActorID) {
		return trade.Trade{}, fmt.Errorf("%w: only the team owner can propose a trade", ErrForbidden)
	}

	receiving, err := s.getTeam(ctx, input.ReceivingTeamID)
	if err != nil {
		return trade.Trade{}, err
	}
	if proposing.LeagueID != receiving.LeagueID {
		return trade.Trade{}, fmt.Errorf("%w: teams are in different leagues", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return trade.Trade{}, fmt.Errorf("generate trade id: %w", err)
	}

	item := trade.Trade{
		ID:                 id,
		LeagueID:           proposing.LeagueID,
		ProposingTeamID:    proposing.ID,
		ReceivingTeamID:    receiving.ID,
		OfferedPlayerIDs:   cleanIDs(input.OfferedPlayerIDs),
		RequestedPlayerIDs: cleanIDs(input.RequestedPlayerIDs),
		Status:             trade.StatusPending,
		CreatedAt:          s.now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := ensureOwnsAll(proposing, item.OfferedPlayerIDs); err != nil {
		return trade.Trade{}, err
	}
	if err := ensureOwnsAll(receiving, item.RequestedPlayerIDs); err != nil {
		return trade.Trade{}, err
	}

	if err := s.tradeRepo.Create(ctx, item); err != nil {
		return trade.Trade{}, fmt.Errorf("create trade: %w", err)
	}

	s.logger.InfoContext(ctx, "trade proposed",
		slog.String("tradeID", item.ID),
		slog.String("proposingTeamID", item.ProposingTeamID),
		slog.String("receivingTeamID", item.ReceivingTeamID),
	)
	return item, nil
}

// Accept swaps the named players between the two rosters. The swap is
// staged on roster clones and persisted only when every move succeeds,
// so a failed slotting leaves both teams untouched.
func (s *TradeService) Accept(ctx context.Context, tradeID, actorID string) (trade.Trade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Accept")
	defer span.End()

	item, err := s.getTrade(ctx, tradeID)
	if err != nil {
		return trade.Trade{}, err
	}

	receiving, err := s.getTeam(ctx, item.ReceivingTeamID)
	if err != nil {
		return trade.Trade{}, err
	}
	if receiving.OwnerID != strings.TrimSpace(actorID) {
		return trade.Trade{}, fmt.Errorf("%w: only the receiving owner can accept", ErrForbidden)
	}

	proposing, err := s.getTeam(ctx, item.ProposingTeamID)
	if err != nil {
		return trade.Trade{}, err
	}

	stagedProposing := proposing.Clone()
	stagedReceiving := receiving.Clone()
	if err := s.swap(ctx, &stagedProposing, &stagedReceiving, item.OfferedPlayerIDs); err != nil {
		return trade.Trade{}, err
	}
	if err := s.swap(ctx, &stagedReceiving, &stagedProposing, item.RequestedPlayerIDs); err != nil {
		return trade.Trade{}, err
	}

	now := s.now().UTC()
	if err := item.Accept(now); err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	stagedProposing.UpdatedAt = now
	stagedReceiving.UpdatedAt = now

	if err := s.teamRepo.UpdateMany(ctx, []roster.Team{stagedProposing, stagedReceiving}); err != nil {
		return trade.Trade{}, fmt.Errorf("update teams: %w", err)
	}
	if err := s.tradeRepo.Update(ctx, item); err != nil {
		return trade.Trade{}, fmt.Errorf("update trade: %w", err)
	}

	s.logger.InfoContext(ctx, "trade accepted",
		slog.String("tradeID", item.ID),
		slog.String("leagueID", item.LeagueID),
	)
	if s.onChange != nil {
		s.onChange(item.LeagueID)
	}
	return item, nil
}

// Reject closes a pending trade. Receiving owner only.
func (s *TradeService) Reject(ctx context.Context, tradeID, actorID string) (trade.Trade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Reject")
	defer span.End()

	item, err := s.getTrade(ctx, tradeID)
	if err != nil {
		return trade.Trade{}, err
	}

	receiving, err := s.getTeam(ctx, item.ReceivingTeamID)
	if err != nil {
		return trade.Trade{}, err
	}
	if receiving.OwnerID != strings.TrimSpace(actorID) {
		return trade.Trade{}, fmt.Errorf("%w: only the receiving owner can reject", ErrForbidden)
	}

	if err := item.Reject(s.now().UTC()); err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := s.tradeRepo.Update(ctx, item); err != nil {
		return trade.Trade{}, fmt.Errorf("update trade: %w", err)
	}
	return item, nil
}

// Cancel withdraws a pending trade. Proposing owner only.
func (s *TradeService) Cancel(ctx context.Context, tradeID, actorID string) (trade.Trade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Cancel")
	defer span.End()

	item, err := s.getTrade(ctx, tradeID)
	if err != nil {
		return trade.Trade{}, err
	}

	proposing, err := s.getTeam(ctx, item.ProposingTeamID)
	if err != nil {
		return trade.Trade{}, err
	}
	if proposing.OwnerID != strings.TrimSpace(actorID) {
		return trade.Trade{}, fmt.Errorf("%w: only the proposing owner can cancel", ErrForbidden)
	}

	if err := item.Cancel(s.now().UTC()); err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := s.tradeRepo.Update(ctx, item); err != nil {
		return trade.Trade{}, fmt.Errorf("update trade: %w", err)
	}
	return item, nil
}

// ListForTeam returns trades involving the actor's team.
func (s *TradeService) ListForTeam(ctx context.Context, teamID, actorID string) ([]trade.Trade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.ListForTeam")
	defer span.End()

	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.OwnerID != strings.TrimSpace(actorID) {
		return nil, fmt.Errorf("%w: only the team owner can list trades", ErrForbidden)
	}

	items, err := s.tradeRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return items, nil
}

// swap moves players from one staged roster to the other, re-slotting
// each by their actual role.
func (s *TradeService) swap(ctx context.Context, from, to *roster.Team, playerIDs []string) error {
	for _, playerID := range playerIDs {
		if _, err := from.RemovePlayer(playerID); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}

		item, exists, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
		}

		if _, err := to.AddPlayer(item.ID, item.Role); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
	}
	return nil
}

func (s *TradeService) getTrade(ctx context.Context, tradeID string) (trade.Trade, error) {
	tradeID = strings.TrimSpace(tradeID)
	if tradeID == "" {
		return trade.Trade{}, fmt.Errorf("%w: trade id is required", ErrInvalidInput)
	}

	item, exists, err := s.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("get trade: %w", err)
	}
	if !exists {
		return trade.Trade{}, fmt.Errorf("%w: trade %s", ErrNotFound, tradeID)
	}
	return item, nil
}

func (s *TradeService) getTeam(ctx context.Context, teamID string) (roster.Team, error) {
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

func ensureOwnsAll(team roster.Team, playerIDs []string) error {
	for _, playerID := range playerIDs {
		if !team.HasPlayer(playerID) {
			return fmt.Errorf("%w: team %s does not own player %s", ErrInvalidInput, team.ID, playerID)
		}
	}
	return nil
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
