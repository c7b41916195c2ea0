package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prover-network/proverstats/pkg/ledger"
	"go.uber.org/zap"
)

// HandleProvers returns all prover aggregates ranked by total staked, joined
// with descriptive metadata where available.
// Endpoint: GET /api/staking/provers
func (c *Controller) HandleProvers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := c.App.Ledger.ListRecords(ctx)
	if err != nil {
		c.App.Logger.Error("ledger query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	// Metadata is enrichment only: its absence must never fail the listing.
	metadata, err := c.App.Ledger.ListMetadata(ctx)
	if err != nil {
		c.App.Logger.Warn("metadata query failed, serving address-only aggregates", zap.Error(err))
		metadata = nil
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": ledger.AggregateByProver(records, metadata),
	})
}

// HandleStakers returns one page of staker aggregates with global ranks.
// Endpoint: GET /api/staking/stakers?search=<s>&page=<n>&pageSize=<n>
func (c *Controller) HandleStakers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spec, err := parsePageSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	search := r.URL.Query().Get("search")

	records, err := c.App.Ledger.ListRecords(ctx)
	if err != nil {
		c.App.Logger.Error("ledger query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	rows, total := ledger.AggregateByStaker(records, search, spec.Page, spec.PageSize)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":     rows,
		"total":    total,
		"page":     spec.Page,
		"pageSize": spec.PageSize,
	})
}

// HandleSummary returns the global staking footprint.
// Endpoint: GET /api/staking/summary
func (c *Controller) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := c.App.Ledger.ListRecords(ctx)
	if err != nil {
		c.App.Logger.Error("ledger query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": ledger.TotalsSummary(records),
	})
}

// HandleTimeseries returns the cumulative staking growth curve.
// Endpoint: GET /api/staking/timeseries?granularity=day|week|month
func (c *Controller) HandleTimeseries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	granularity, err := ledger.ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := c.App.Ledger.ListRecords(ctx)
	if err != nil {
		c.App.Logger.Error("ledger query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": ledger.Timeseries(records, granularity),
	})
}

// HandleProverTimeseries returns one prover's daily cumulative curve.
// Endpoint: GET /api/staking/provers/{address}/timeseries
func (c *Controller) HandleProverTimeseries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	address := mux.Vars(r)["address"]
	if address == "" {
		writeError(w, http.StatusBadRequest, "missing prover address")
		return
	}

	records, err := c.App.Ledger.ListRecordsByProver(ctx, address)
	if err != nil {
		c.App.Logger.Error("ledger query failed",
			zap.String("prover", address),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": ledger.Timeseries(records, ledger.GranularityDay),
	})
}
