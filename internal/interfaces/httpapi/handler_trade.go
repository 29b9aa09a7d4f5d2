package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riftlabs/fantasy-esports/internal/domain/trade"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

func (h *Handler) ProposeTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProposeTrade")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req proposeTradeRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tradeService.Propose(ctx, usecase.ProposeTradeInput{
		ActorID:            principal.UserID,
		ProposingTeamID:    req.ProposingTeamID,
		ReceivingTeamID:    req.ReceivingTeamID,
		OfferedPlayerIDs:   req.OfferedPlayerIDs,
		RequestedPlayerIDs: req.RequestedPlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "propose trade failed", "user_id", principal.UserID, "proposing_team_id", req.ProposingTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tradeToDTO(ctx, item))
}

func (h *Handler) ListTradesForTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTradesForTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	trades, err := h.tradeService.ListForTeam(ctx, teamID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list trades for team failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tradeDTO, 0, len(trades))
	for _, item := range trades {
		items = append(items, tradeToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AcceptTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptTrade")
	defer span.End()

	h.resolveTrade(ctx, w, r, "accept", h.tradeService.Accept)
}

func (h *Handler) RejectTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectTrade")
	defer span.End()

	h.resolveTrade(ctx, w, r, "reject", h.tradeService.Reject)
}

func (h *Handler) CancelTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelTrade")
	defer span.End()

	h.resolveTrade(ctx, w, r, "cancel", h.tradeService.Cancel)
}

func (h *Handler) resolveTrade(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	action string,
	resolve func(ctx context.Context, tradeID, actorID string) (trade.Trade, error),
) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	tradeID := strings.TrimSpace(r.PathValue("tradeID"))

	item, err := resolve(ctx, tradeID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve trade failed", "user_id", principal.UserID, "trade_id", tradeID, "action", action, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tradeToDTO(ctx, item))
}
