// Package stats derives day-over-day activity, individual standings, and
// page slices from population snapshots. Everything here is a pure
// computation over inputs the caller already materialized.
package stats

import (
	"github.com/prover-network/proverstats/pkg/numeric"
	"github.com/prover-network/proverstats/pkg/snapshot"
)

// NoGainer is reported when a day has no positive star gain at all.
const NoGainer = "-"

// DailyDelta is the day-over-day movement between two adjacent population
// snapshots.
type DailyDelta struct {
	NewUsers        int    `json:"newUsers"`
	StarsEarned     int64  `json:"starsEarned"`
	ProofsGenerated int64  `json:"proofsGenerated"`
	ActiveUsers     int    `json:"activeUsers"`
	TopGainer       string `json:"topGainer"`
	TopGainerStars  int64  `json:"topGainerStars"`
}

// ComputeDailyDelta compares the current population against the previous
// day's. A nil previous population (the first day in the dataset) is an
// all-zero baseline, not an error.
//
// The source counters are cumulative and should never regress, but the
// exports are untrusted and corrections happen, so every delta is clamped at
// zero rather than assumed non-negative.
func ComputeDailyDelta(current, previous []snapshot.Entry) DailyDelta {
	d := DailyDelta{
		ActiveUsers: len(current),
		TopGainer:   NoGainer,
	}

	if n := len(current) - len(previous); n > 0 {
		d.NewUsers = n
	}

	var curStars, curProofs, prevStars, prevProofs int64
	prevStarsByName := make(map[string]int64, len(previous))
	for _, e := range previous {
		stars := numeric.ParseLenientInt(e.Stars)
		prevStars += stars
		prevProofs += numeric.ParseLenientInt(e.Proofs)
		if _, seen := prevStarsByName[e.Name]; !seen {
			prevStarsByName[e.Name] = stars
		}
	}

	for _, e := range current {
		stars := numeric.ParseLenientInt(e.Stars)
		curStars += stars
		curProofs += numeric.ParseLenientInt(e.Proofs)

		// New entities gain from a zero baseline.
		gain := stars - prevStarsByName[e.Name]
		if gain < 0 {
			gain = 0
		}
		// Strictly-greater keeps the first-encountered entity on ties.
		if gain > d.TopGainerStars {
			d.TopGainerStars = gain
			d.TopGainer = e.Name
		}
	}

	if delta := curStars - prevStars; delta > 0 {
		d.StarsEarned = delta
	}
	if delta := curProofs - prevProofs; delta > 0 {
		d.ProofsGenerated = delta
	}
	return d
}
