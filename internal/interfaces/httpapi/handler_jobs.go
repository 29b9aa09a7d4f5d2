package httpapi

import (
	"net/http"
)

func (h *Handler) RunStatsRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunStatsRefreshJob")
	defer span.End()

	result, err := h.statsRefreshService.RefreshAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "stats refresh job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Skipped {
		status = http.StatusAccepted
	}
	writeSuccess(ctx, w, status, refreshResultToDTO(result))
}
