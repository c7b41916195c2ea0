package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/prover-network/proverstats/pkg/numeric"
	"github.com/prover-network/proverstats/pkg/snapshot"
)

// ErrEntityNotFound reports a name absent from the population. Callers map
// it to a not-found response rather than a failure.
var ErrEntityNotFound = errors.New("entity not found in population")

// Progress holds the normalized 1-100 progress score per metric. Scoring
// exactly at the population mean yields 20.
type Progress struct {
	Proofs int `json:"proofs"`
	Cycles int `json:"cycles"`
	Stars  int `json:"stars"`
}

// IndividualStats is one participant's standing against the full population.
type IndividualStats struct {
	Entry      snapshot.Entry `json:"entry"`
	Progress   Progress       `json:"progress"`
	Percentile string         `json:"percentile"`
}

// ComputeIndividualStats locates the named entity in the population and
// derives its normalized progress scores and rank percentile.
func ComputeIndividualStats(name string, population []snapshot.Entry) (*IndividualStats, error) {
	found := -1
	var totalProofs, totalCycles, totalStars int64
	for i, e := range population {
		totalProofs += numeric.ParseLenientInt(e.Proofs)
		totalCycles += numeric.ParseLenientInt(e.Cycles)
		totalStars += numeric.ParseLenientInt(e.Stars)
		if found < 0 && e.Name == name {
			found = i
		}
	}
	if found < 0 {
		return nil, ErrEntityNotFound
	}

	entry := population[found]
	size := len(population)

	// The source assigns rank; trust it, but fall back to the positional
	// index when the rank cell is decorated beyond recognition.
	rank := int(numeric.ParseLenientInt(entry.Rank))
	if rank < 1 {
		rank = found + 1
	}

	return &IndividualStats{
		Entry: entry,
		Progress: Progress{
			Proofs: progressScore(numeric.ParseLenientInt(entry.Proofs), totalProofs, size),
			Cycles: progressScore(numeric.ParseLenientInt(entry.Cycles), totalCycles, size),
			Stars:  progressScore(numeric.ParseLenientInt(entry.Stars), totalStars, size),
		},
		Percentile: formatPercentile(rank, size),
	}, nil
}

// progressScore is a linear score against the population mean, clamped to
// [1, 100]. A zero or undefined mean clamps to the minimum instead of
// dividing by zero.
func progressScore(value, total int64, size int) int {
	if size == 0 || total <= 0 {
		return 1
	}
	avg := float64(total) / float64(size)
	score := float64(value) / avg * 20
	if score < 1 {
		score = 1
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// formatPercentile renders the "top N%" figure with tiered precision: plain
// integers for the common case, three decimals for the top three ranks, two
// decimals otherwise. The >1 boundary is strict; exactly 1.000% formats with
// decimals.
func formatPercentile(rank, size int) string {
	if size == 0 {
		return "0"
	}
	raw := float64(rank) / float64(size) * 100
	switch {
	case raw > 1:
		return fmt.Sprintf("%d", int(math.Floor(raw)))
	case rank <= 3:
		return fmt.Sprintf("%.3f", raw)
	default:
		return fmt.Sprintf("%.2f", raw)
	}
}
