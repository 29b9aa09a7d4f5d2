package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/region"
)

// ExternalGameLine is one pro game stat line delivered by a provider.
type ExternalGameLine struct {
	PlayerID string
	Week     int
	Stats    player.GameStats
}

// StatsProvider fetches pro game stat lines for one pro league.
// sinceWeek narrows the window to weeks at or after it; zero requests
// the full season.
type StatsProvider interface {
	FetchGameLines(ctx context.Context, proLeague string, sinceWeek int) ([]ExternalGameLine, error)
}

// RefreshResult summarizes one stats refresh run.
type RefreshResult struct {
	Leagues        int
	LinesFetched   int
	PlayersUpdated int
	Skipped        bool
	DurationMs     int64
}

type StatsRefreshService struct {
	provider    StatsProvider
	playerRepo  player.Repository
	logger      *slog.Logger
	workerCount int
	inProgress  atomic.Bool
	onRefresh   func()
	rescorer    func(context.Context) error
}

func NewStatsRefreshService(
	provider StatsProvider,
	playerRepo player.Repository,
	workerCount int,
	logger *slog.Logger,
) *StatsRefreshService {
	if logger == nil {
		logger = slog.Default()
	}
	if workerCount < 1 {
		workerCount = 4
	}

	return &StatsRefreshService{
		provider:    provider,
		playerRepo:  playerRepo,
		logger:      logger,
		workerCount: workerCount,
	}
}

// SetRefreshListener registers a hook invoked after a refresh run that
// changed player data, used to drop cached player views.
func (s *StatsRefreshService) SetRefreshListener(fn func()) {
	s.onRefresh = fn
}

// SetLeagueRescorer registers a hook that recomputes league scores and
// standings after a refresh run that changed player data.
func (s *StatsRefreshService) SetLeagueRescorer(fn func(context.Context) error) {
	s.rescorer = fn
}

// RefreshAll pulls the full season of stat lines for every pro league
// and re-derives each covered player's totals and weekly points from
// scratch, so repeated runs over the same lines never double-count.
// Overlapping runs are skipped rather than queued.
func (s *StatsRefreshService) RefreshAll(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsRefreshService.RefreshAll")
	defer span.End()

	if !s.inProgress.CompareAndSwap(false, true) {
		s.logger.InfoContext(ctx, "stats refresh already running, skipping")
		return RefreshResult{Skipped: true}, nil
	}
	defer s.inProgress.Store(false)

	start := time.Now()
	leagues := region.AllLeagues()

	var mu sync.Mutex
	lines := make([]ExternalGameLine, 0, 64)

	fetchers := pool.New().WithContext(ctx).WithMaxGoroutines(s.workerCount)
	for _, proLeague := range leagues {
		proLeague := proLeague
		fetchers.Go(func(ctx context.Context) error {
			fetched, err := s.provider.FetchGameLines(ctx, proLeague, 0)
			if err != nil {
				return fmt.Errorf("fetch game lines for %s: %w", proLeague, err)
			}

			mu.Lock()
			lines = append(lines, fetched...)
			mu.Unlock()
			return nil
		})
	}
	if err := fetchers.Wait(); err != nil {
		return RefreshResult{}, fmt.Errorf("%w: %s", ErrDependencyUnavailable, err)
	}

	updated, err := s.applyLines(ctx, lines)
	if err != nil {
		return RefreshResult{}, err
	}

	result := RefreshResult{
		Leagues:        len(leagues),
		LinesFetched:   len(lines),
		PlayersUpdated: updated,
		DurationMs:     time.Since(start).Milliseconds(),
	}

	s.logger.InfoContext(ctx, "stats refresh completed",
		slog.Int("leagues", result.Leagues),
		slog.Int("lines", result.LinesFetched),
		slog.Int("playersUpdated", result.PlayersUpdated),
		slog.Int64("durationMs", result.DurationMs),
	)
	if updated > 0 {
		if s.onRefresh != nil {
			s.onRefresh()
		}
		if s.rescorer != nil {
			if err := s.rescorer(ctx); err != nil {
				s.logger.ErrorContext(ctx, "league rescore after refresh failed", slog.Any("error", err))
			}
		}
	}
	return result, nil
}

// applyLines groups lines per player and folds each player's lines
// through a bounded worker pool. One worker owns a player's whole
// batch, so a player row is never written concurrently.
func (s *StatsRefreshService) applyLines(ctx context.Context, lines []ExternalGameLine) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	linesByPlayer := make(map[string][]ExternalGameLine)
	for _, line := range lines {
		if line.PlayerID == "" || line.Week < 1 {
			continue
		}
		linesByPlayer[line.PlayerID] = append(linesByPlayer[line.PlayerID], line)
	}

	workers, err := ants.NewPool(s.workerCount)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	var updatedCount atomic.Int32
	var errMu sync.Mutex
	var firstErr error

	for playerID, playerLines := range linesByPlayer {
		playerID, playerLines := playerID, playerLines
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			if err := s.applyPlayerLines(ctx, playerID, playerLines); err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			updatedCount.Add(1)
		}); err != nil {
			wg.Done()
			return 0, fmt.Errorf("submit to worker pool: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return 0, firstErr
	}
	return int(updatedCount.Load()), nil
}

func (s *StatsRefreshService) applyPlayerLines(ctx context.Context, playerID string, playerLines []ExternalGameLine) error {
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player %s: %w", playerID, err)
	}
	if !exists {
		// Providers can surface players outside the curated pool.
		return nil
	}

	// Re-derive from scratch; the provider delivers the whole season.
	item.ResetStats()
	for _, line := range playerLines {
		item.ApplyGame(line.Week, line.Stats)
	}

	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert player %s: %w", playerID, err)
	}
	return nil
}
