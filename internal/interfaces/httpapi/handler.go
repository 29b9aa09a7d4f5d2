package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

type Handler struct {
	userService         *usecase.UserService
	playerService       *usecase.PlayerService
	leagueService       *usecase.LeagueService
	teamService         *usecase.TeamService
	tradeService        *usecase.TradeService
	messageService      *usecase.MessageService
	statsRefreshService *usecase.StatsRefreshService
	logger              *slog.Logger
	validator           *validator.Validate
}

func NewHandler(
	userService *usecase.UserService,
	playerService *usecase.PlayerService,
	leagueService *usecase.LeagueService,
	teamService *usecase.TeamService,
	tradeService *usecase.TradeService,
	messageService *usecase.MessageService,
	statsRefreshService *usecase.StatsRefreshService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		userService:         userService,
		playerService:       playerService,
		leagueService:       leagueService,
		teamService:         teamService,
		tradeService:        tradeService,
		messageService:      messageService,
		statsRefreshService: statsRefreshService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
