package controller

import (
	"net/http"
	"time"

	"github.com/prover-network/proverstats/pkg/stats"
	"go.uber.org/zap"
)

// HandleWeekActivity returns the seven daily activity records for the week
// containing the requested start date. The window is normalized to a full
// Monday-through-Sunday week regardless of which weekday the caller sends.
// Endpoint: GET /api/activity/week?start=YYYY-MM-DD
func (c *Controller) HandleWeekActivity(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	if startStr == "" {
		writeError(w, http.StatusBadRequest, "missing start parameter")
		return
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
		return
	}

	week, err := stats.BuildWeekActivity(r.Context(), c.App.Snapshots, start, c.App.Logger)
	if err != nil {
		c.App.Logger.Error("week activity computation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "snapshot source unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": week,
	})
}
