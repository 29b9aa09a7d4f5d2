package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createLeagueRequest
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

	item, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{
		Name:           req.Name,
		CommissionerID: principal.UserID,
		Region:         req.Region,
		MaxTeams:       req.MaxTeams,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(ctx, item))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, item := range leagues {
		items = append(items, leagueToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	item, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item))
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req joinLeagueRequest
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

	team, err := h.leagueService.JoinLeague(ctx, usecase.JoinLeagueInput{
		LeagueID: leagueID,
		OwnerID:  principal.UserID,
		TeamName: req.TeamName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, team))
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	// The body is optional; an empty body means one full round robin.
	var req generateScheduleRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.GenerateSchedule(ctx, leagueID, principal.UserID, req.Weeks)
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item))
}

func (h *Handler) CalculateWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculateWeekScores")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	week, err := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week must be a number: %v", usecase.ErrInvalidInput, err))
		return
	}

	results, err := h.leagueService.CalculateWeekScores(ctx, leagueID, week, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "calculate week scores failed", "user_id", principal.UserID, "league_id", leagueID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, matchResultToDTO(result))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	standings, err := h.leagueService.Standings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, standing := range standings {
		items = append(items, standingToDTO(standing))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
