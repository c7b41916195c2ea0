// Package ledger derives staking aggregates from the raw transaction ledger.
// Every operation recomputes from the full row set it is handed; at testnet
// volumes that is deliberately simpler than keeping materialized state in
// sync. All amount math is arbitrary-precision over the raw fixed-point
// values, converted to token units only on the way out.
package ledger

import (
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/prover-network/proverstats/pkg/db"
	"github.com/prover-network/proverstats/pkg/numeric"
	"github.com/prover-network/proverstats/pkg/stats"
)

// StakerAggregate is one staker's running total with its global rank and the
// staker's most recent transaction.
type StakerAggregate struct {
	Rank          int       `json:"rank"`
	Staker        string    `json:"staker"`
	TotalStaked   string    `json:"totalStaked"`
	Prover        string    `json:"prover"`
	LastStakeTime time.Time `json:"lastStakeTime"`
	LastTxHash    string    `json:"lastTxHash"`
}

// ProverAggregate is one prover's running total, enriched with descriptive
// metadata when available.
type ProverAggregate struct {
	Rank        int    `json:"rank"`
	Prover      string `json:"prover"`
	TotalStaked string `json:"totalStaked"`
	StakerCount int    `json:"stakerCount"`
	Name        string `json:"name,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	APR         string `json:"apr,omitempty"`
	Gas         string `json:"gas,omitempty"`
	SuccessRate string `json:"successRate,omitempty"`
}

// Summary is the global staking footprint.
type Summary struct {
	UniqueStakers int    `json:"uniqueStakers"`
	TotalStaked   string `json:"totalStaked"`
}

// group accumulates per-key state in first-encounter order so that equal
// totals keep a stable rank order.
type group struct {
	key    string
	total  *big.Int
	last   db.LedgerRecord
	unique map[string]struct{}
}

func groupBy(records []db.LedgerRecord, key func(db.LedgerRecord) string, trackStakers bool) []*group {
	index := make(map[string]*group)
	var ordered []*group
	for _, r := range records {
		k := key(r)
		g, ok := index[k]
		if !ok {
			g = &group{key: k, total: new(big.Int)}
			if trackStakers {
				g.unique = make(map[string]struct{})
			}
			index[k] = g
			ordered = append(ordered, g)
		}
		g.total.Add(g.total, numeric.ParseAmount(r.Amount))
		if !r.BlockTime.Before(g.last.BlockTime) {
			g.last = r
		}
		if trackStakers {
			g.unique[r.Staker] = struct{}{}
		}
	}

	// Descending by total; stable keeps first-encounter order on ties.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].total.Cmp(ordered[j].total) > 0
	})
	return ordered
}

// AggregateByProver groups the ledger by prover, ranks by total descending,
// and joins descriptive metadata.
func AggregateByProver(records []db.LedgerRecord, metadata []db.ProverMetadata) []ProverAggregate {
	groups := groupBy(records, func(r db.LedgerRecord) string { return r.Prover }, true)
	match := newMetadataIndex(metadata)

	out := make([]ProverAggregate, 0, len(groups))
	for i, g := range groups {
		agg := ProverAggregate{
			Rank:        i + 1,
			Prover:      g.key,
			TotalStaked: numeric.ToDecimalUnits(g.total.String(), numeric.DefaultDecimals),
			StakerCount: len(g.unique),
		}
		if meta := match.lookup(g.key); meta != nil {
			agg.Name = meta.Name
			agg.LogoURL = meta.LogoURL
			agg.APR = meta.APR
			agg.Gas = meta.Gas
			agg.SuccessRate = meta.SuccessRate
		}
		out = append(out, agg)
	}
	return out
}

// AggregateByStaker groups the ledger by staker, assigns global ranks over
// the entire population, then applies the optional case-insensitive search
// (matching staker or their most recent prover) and pagination. Ranks are
// assigned before filtering so a filtered row keeps its true standing.
func AggregateByStaker(records []db.LedgerRecord, search string, page, pageSize int) ([]StakerAggregate, int) {
	groups := groupBy(records, func(r db.LedgerRecord) string { return r.Staker }, false)

	all := make([]StakerAggregate, 0, len(groups))
	for i, g := range groups {
		all = append(all, StakerAggregate{
			Rank:          i + 1,
			Staker:        g.key,
			TotalStaked:   numeric.ToDecimalUnits(g.total.String(), numeric.DefaultDecimals),
			Prover:        g.last.Prover,
			LastStakeTime: g.last.BlockTime,
			LastTxHash:    g.last.TxHash,
		})
	}

	filtered := all
	if search != "" {
		needle := strings.ToLower(search)
		filtered = filtered[:0:0]
		for _, row := range all {
			if strings.Contains(strings.ToLower(row.Staker), needle) ||
				strings.Contains(strings.ToLower(row.Prover), needle) {
				filtered = append(filtered, row)
			}
		}
	}

	return stats.Paginate(filtered, page, pageSize), len(filtered)
}

// TotalsSummary counts distinct stakers and sums the entire ledger.
func TotalsSummary(records []db.LedgerRecord) Summary {
	total := new(big.Int)
	stakers := make(map[string]struct{})
	for _, r := range records {
		total.Add(total, numeric.ParseAmount(r.Amount))
		stakers[r.Staker] = struct{}{}
	}
	return Summary{
		UniqueStakers: len(stakers),
		TotalStaked:   numeric.ToDecimalUnits(total.String(), numeric.DefaultDecimals),
	}
}
