package handlers

import (
	"net/http"
	"strconv"
	"time"
)

// MediaCleanup runs the age-based retention sweep over the derivative
// directories. The days threshold defaults to the configured retention.
func (a *App) MediaCleanup(w http.ResponseWriter, r *http.Request) {
	days := a.Config.RetentionDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "days must be a positive integer")
			return
		}
		days = n
	}

	removed, err := a.Store.Sweep(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		a.Logger.Error().Err(err).Int("days", days).Msg("retention sweep failed")
		a.error(w, http.StatusInternalServerError, "internal", "sweep failed")
		return
	}
	a.Logger.Info().Int("days", days).Int("removed", removed).Msg("retention sweep done")
	a.json(w, http.StatusOK, map[string]any{"days": days, "removed": removed})
}
