package ledger

import (
	"errors"
	"math/big"
	"sort"
	"time"

	"github.com/prover-network/proverstats/pkg/db"
	"github.com/prover-network/proverstats/pkg/numeric"
)

// Granularity selects the bucket width for time series aggregation.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ErrBadGranularity reports an unrecognized bucket width; controllers reject
// the request before any computation runs.
var ErrBadGranularity = errors.New("granularity must be day, week or month")

// ParseGranularity validates a caller-supplied bucket width. Empty defaults
// to daily.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case "":
		return GranularityDay, nil
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	default:
		return "", ErrBadGranularity
	}
}

// BucketPoint is one point on the cumulative growth curve: the all-time
// total as of the end of that bucket, not a per-bucket delta.
type BucketPoint struct {
	Bucket time.Time `json:"bucket"`
	Total  string    `json:"total"`
}

// Timeseries truncates every record to its bucket boundary and produces the
// cumulative running sum, ordered ascending. Only buckets with at least one
// record appear.
func Timeseries(records []db.LedgerRecord, granularity Granularity) []BucketPoint {
	sums := make(map[time.Time]*big.Int)
	for _, r := range records {
		bucket := truncate(r.BlockTime, granularity)
		if _, ok := sums[bucket]; !ok {
			sums[bucket] = new(big.Int)
		}
		sums[bucket].Add(sums[bucket], numeric.ParseAmount(r.Amount))
	}

	buckets := make([]time.Time, 0, len(sums))
	for b := range sums {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	running := new(big.Int)
	out := make([]BucketPoint, 0, len(buckets))
	for _, b := range buckets {
		running.Add(running, sums[b])
		out = append(out, BucketPoint{
			Bucket: b,
			Total:  numeric.ToDecimalUnits(running.String(), numeric.DefaultDecimals),
		})
	}
	return out
}

// truncate snaps a timestamp to its bucket boundary in UTC. Weeks start on
// Monday, matching the activity week alignment.
func truncate(t time.Time, granularity Granularity) time.Time {
	t = t.UTC()
	switch granularity {
	case GranularityWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}
