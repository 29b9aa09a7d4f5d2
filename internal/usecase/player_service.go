package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/region"
)

type PlayerService struct {
	playerRepo player.Repository
	logger     *slog.Logger
}

func NewPlayerService(playerRepo player.Repository, logger *slog.Logger) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// ListByRegion returns the draftable player pool for a region alias or
// pro league code, sorted by handle.
func (s *PlayerService) ListByRegion(ctx context.Context, regionInput string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByRegion")
	defer span.End()

	leagues := region.Resolve(regionInput)
	if len(leagues) == 0 {
		return nil, fmt.Errorf("%w: unknown region %q", ErrInvalidInput, strings.TrimSpace(regionInput))
	}

	players, err := s.playerRepo.ListByProLeagues(ctx, leagues)
	if err != nil {
		return nil, fmt.Errorf("list players by pro leagues: %w", err)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].Handle < players[j].Handle
	})
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return item, nil
}
