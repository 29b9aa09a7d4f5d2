package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))

	team, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, team))
}

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	teams, err := h.teamService.ListByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams by league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, team := range teams {
		items = append(items, teamToDTO(ctx, team))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddPlayerToTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayerToTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req rosterMoveRequest
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

	team, slot, err := h.teamService.AddPlayer(ctx, usecase.RosterMoveInput{
		TeamID:   teamID,
		ActorID:  principal.UserID,
		PlayerID: req.PlayerID,
		Slot:     req.Slot,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add player to team failed", "user_id", principal.UserID, "team_id", teamID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterMoveDTO{
		Team:         teamToDTO(ctx, team),
		AssignedSlot: string(slot),
	})
}

func (h *Handler) RemovePlayerFromTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePlayerFromTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	team, err := h.teamService.RemovePlayer(ctx, usecase.RosterMoveInput{
		TeamID:   teamID,
		ActorID:  principal.UserID,
		PlayerID: playerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "remove player from team failed", "user_id", principal.UserID, "team_id", teamID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, team))
}
