package httpapi

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 2 * time.Second

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Error(r.Context(), "database ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
