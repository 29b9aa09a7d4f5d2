// Package app assembles storage, services, and the HTTP surface into a
// runnable server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riftlabs/fantasy-esports/external/jobqueue"
	"github.com/riftlabs/fantasy-esports/external/prostats"
	"github.com/riftlabs/fantasy-esports/internal/config"
	"github.com/riftlabs/fantasy-esports/internal/domain/league"
	"github.com/riftlabs/fantasy-esports/internal/domain/message"
	"github.com/riftlabs/fantasy-esports/internal/domain/player"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
	"github.com/riftlabs/fantasy-esports/internal/domain/trade"
	"github.com/riftlabs/fantasy-esports/internal/domain/user"
	"github.com/riftlabs/fantasy-esports/internal/infrastructure/account/anubis"
	cacherepo "github.com/riftlabs/fantasy-esports/internal/infrastructure/repository/cache"
	"github.com/riftlabs/fantasy-esports/internal/infrastructure/repository/memory"
	"github.com/riftlabs/fantasy-esports/internal/infrastructure/repository/postgres"
	"github.com/riftlabs/fantasy-esports/internal/interfaces/httpapi"
	basecache "github.com/riftlabs/fantasy-esports/internal/platform/cache"
	idgen "github.com/riftlabs/fantasy-esports/internal/platform/id"
	"github.com/riftlabs/fantasy-esports/internal/platform/logging"
	"github.com/riftlabs/fantasy-esports/internal/platform/resilience"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

type App struct {
	Server *http.Server

	cfg            config.Config
	logger         *slog.Logger
	db             *sqlx.DB
	refreshService *usecase.StatsRefreshService
	publisher      *jobqueue.QStashPublisher
	refreshCancel  context.CancelFunc
	refreshDone    chan struct{}
}

type repositories struct {
	users          user.Repository
	players        player.Repository
	leagues        league.Repository
	teams          roster.Repository
	trades         trade.Repository
	messages       message.Repository
	friendRequests message.FriendRequestRepository
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{cfg: cfg, logger: logger}

	repos, err := a.buildRepositories(ctx)
	if err != nil {
		return nil, err
	}

	versions := basecache.NewVersions()
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store, versions)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store, versions)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store, versions)
	}

	ids := idgen.NewRandomGenerator()

	userSvc := usecase.NewUserService(repos.users, ids, logger)
	playerSvc := usecase.NewPlayerService(repos.players, logger)
	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.teams, repos.players, ids, logger)
	teamSvc := usecase.NewTeamService(repos.teams, repos.leagues, repos.players, logger)
	tradeSvc := usecase.NewTradeService(repos.trades, repos.teams, repos.players, ids, logger)
	messageSvc := usecase.NewMessageService(repos.messages, repos.friendRequests, repos.users, ids, logger)
	refreshSvc := usecase.NewStatsRefreshService(a.buildStatsProvider(), repos.players, cfg.StatsRefreshWorkers, logger)

	// Roster and schedule mutations invalidate both league and team views;
	// standings read teams and leagues together.
	invalidateLeagueViews := func(string) {
		versions.Bump(cacherepo.NamespaceLeagues)
		versions.Bump(cacherepo.NamespaceTeams)
	}
	leagueSvc.SetChangeListener(invalidateLeagueViews)
	teamSvc.SetChangeListener(invalidateLeagueViews)
	tradeSvc.SetChangeListener(invalidateLeagueViews)
	refreshSvc.SetRefreshListener(func() {
		versions.Bump(cacherepo.NamespacePlayers)
	})
	refreshSvc.SetLeagueRescorer(leagueSvc.RescoreActiveLeagues)
	a.refreshService = refreshSvc

	verifier := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		anubis.ClientConfig{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectPath,
			CacheTTL:       cfg.AnubisCacheTTL,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	if cfg.QStashEnabled {
		a.publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	handler := httpapi.NewHandler(userSvc, playerSvc, leagueSvc, teamSvc, tradeSvc, messageSvc, refreshSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if a.Server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return a, nil
}

func (a *App) buildRepositories(ctx context.Context) (repositories, error) {
	switch a.cfg.StorageDriver {
	case config.StorageDriverMemory:
		playerRepo := memory.NewPlayerRepository()
		if err := memory.SeedPlayers(ctx, playerRepo); err != nil {
			return repositories{}, fmt.Errorf("seed players: %w", err)
		}
		return repositories{
			users:          memory.NewUserRepository(),
			players:        playerRepo,
			leagues:        memory.NewLeagueRepository(),
			teams:          memory.NewTeamRepository(),
			trades:         memory.NewTradeRepository(),
			messages:       memory.NewMessageRepository(),
			friendRequests: memory.NewFriendRequestRepository(),
		}, nil
	default:
		db, err := openDB(ctx, a.cfg)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		return repositories{
			users:          postgres.NewUserRepository(db),
			players:        postgres.NewPlayerRepository(db),
			leagues:        postgres.NewLeagueRepository(db),
			teams:          postgres.NewTeamRepository(db),
			trades:         postgres.NewTradeRepository(db),
			messages:       postgres.NewMessageRepository(db),
			friendRequests: postgres.NewFriendRequestRepository(db),
		}, nil
	}
}

func (a *App) buildStatsProvider() usecase.StatsProvider {
	if !a.cfg.ProStatsEnabled {
		return noopStatsProvider{}
	}

	return prostats.NewClient(prostats.ClientConfig{
		BaseURL:      a.cfg.ProStatsBaseURL,
		Token:        a.cfg.ProStatsToken,
		Timeout:      a.cfg.ProStatsTimeout,
		MaxRetries:   a.cfg.ProStatsMaxRetries,
		RequestDelay: a.cfg.ProStatsRequestDelay,
		CacheTTL:     a.cfg.ProStatsCacheTTL,
		Logger:       logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          a.cfg.ProStatsCircuitEnabled,
			FailureThreshold: a.cfg.ProStatsCircuitFailureCount,
			OpenTimeout:      a.cfg.ProStatsCircuitOpenTimeout,
			HalfOpenMaxReq:   a.cfg.ProStatsCircuitHalfOpenMaxReq,
		},
	})
}

// StartBackgroundJobs launches the periodic stats refresh. With QStash
// enabled the interval only publishes a callback job; the actual refresh
// happens when QStash calls the internal endpoint back.
func (a *App) StartBackgroundJobs() {
	if !a.cfg.ProStatsEnabled {
		a.logger.Info("stats refresh disabled", "reason", "PROSTATS_ENABLED=false")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.refreshCancel = cancel
	a.refreshDone = make(chan struct{})

	go func() {
		defer close(a.refreshDone)

		ticker := time.NewTicker(a.cfg.StatsRefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.runRefreshCycle(ctx)
			}
		}
	}()

	a.logger.Info("stats refresh scheduled",
		"interval", a.cfg.StatsRefreshInterval.String(),
		"via_qstash", a.publisher != nil,
	)
}

func (a *App) runRefreshCycle(ctx context.Context) {
	if a.publisher != nil {
		dedupID := "stats-refresh-" + time.Now().UTC().Format("2006-01-02T15:04")
		if err := a.publisher.EnqueueStatsRefresh(ctx, 0, dedupID); err != nil {
			a.logger.ErrorContext(ctx, "enqueue stats refresh job", "error", err)
		}
		return
	}

	result, err := a.refreshService.RefreshAll(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "stats refresh failed", "error", err)
		return
	}
	a.logger.InfoContext(ctx, "stats refresh completed",
		"leagues", result.Leagues,
		"lines_fetched", result.LinesFetched,
		"players_updated", result.PlayersUpdated,
		"skipped", result.Skipped,
		"duration_ms", result.DurationMs,
	)
}

func (a *App) Shutdown(ctx context.Context) error {
	if a.refreshCancel != nil {
		a.refreshCancel()
		select {
		case <-a.refreshDone:
		case <-ctx.Done():
		}
	}

	var firstErr error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// noopStatsProvider backs the refresh service when no upstream feed is
// configured; manual refresh calls then report zero fetched lines.
type noopStatsProvider struct{}

func (noopStatsProvider) FetchGameLines(context.Context, string, int) ([]usecase.ExternalGameLine, error) {
	return nil, nil
}
