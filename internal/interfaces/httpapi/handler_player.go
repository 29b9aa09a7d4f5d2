package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListPlayersByRegion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByRegion")
	defer span.End()

	regionInput := strings.TrimSpace(r.PathValue("region"))

	players, err := h.playerService.ListByRegion(ctx, regionInput)
	if err != nil {
		h.logger.WarnContext(ctx, "list players by region failed", "region", regionInput, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, item := range players {
		items = append(items, playerToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	item, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item))
}
