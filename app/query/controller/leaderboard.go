package controller

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prover-network/proverstats/pkg/stats"
	"go.uber.org/zap"
)

// HandleUserStats returns one participant's latest snapshot entry along with
// their normalized progress scores and rank percentile.
// Endpoint: GET /api/leaderboard/users/{name}
func (c *Controller) HandleUserStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing user name")
		return
	}

	set, err := c.App.Snapshots.List(ctx)
	if err != nil {
		c.App.Logger.Error("snapshot listing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "snapshot source unavailable")
		return
	}
	if len(set) == 0 {
		writeError(w, http.StatusNotFound, "no snapshot data available")
		return
	}

	latest := &set[len(set)-1]
	population, err := c.App.Snapshots.Entries(ctx, latest)
	if err != nil {
		c.App.Logger.Error("snapshot load failed",
			zap.String("snapshot", latest.Day),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "snapshot source unavailable")
		return
	}

	individual, err := stats.ComputeIndividualStats(name, population)
	if err != nil {
		if errors.Is(err, stats.ErrEntityNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "stats computation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":     individual,
		"snapshot": latest.Day,
	})
}
