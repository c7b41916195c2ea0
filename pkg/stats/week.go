package stats

import (
	"context"
	"time"

	"github.com/prover-network/proverstats/pkg/snapshot"
	"go.uber.org/zap"
)

// DailyActivity is one calendar day of network activity, derived from the
// snapshot pair (day, day-1). HasData is false for days without a snapshot;
// such records are explicitly zeroed so a week always renders as seven days.
type DailyActivity struct {
	Day  string `json:"day"`  // short weekday label, "Mon".."Sun"
	Date string `json:"date"` // YYYY-MM-DD
	DailyDelta
	HasData bool `json:"hasData"`
}

// WeekRange normalizes any date to the full Monday-through-Sunday week
// containing it.
func WeekRange(date time.Time) (monday, sunday time.Time) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(date.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	monday = date.AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// BuildWeekActivity computes the seven daily activity records for the week
// containing start. Days without a snapshot produce zeroed placeholder
// records; an empty snapshot source therefore yields a fully-zeroed week, not
// an error. Filesystem failures from the locator propagate unmasked.
func BuildWeekActivity(ctx context.Context, loc snapshot.Locator, start time.Time, logger *zap.Logger) ([]DailyActivity, error) {
	set, err := loc.List(ctx)
	if err != nil {
		return nil, err
	}

	monday, _ := WeekRange(start)

	// Entries load at most once per snapshot even when a snapshot serves as
	// both "current" for one day and "previous" for the next.
	loaded := make(map[string][]snapshot.Entry)
	entriesFor := func(snap *snapshot.Snapshot) ([]snapshot.Entry, error) {
		if snap == nil {
			return nil, nil
		}
		if cached, ok := loaded[snap.Day]; ok {
			return cached, nil
		}
		entries, err := loc.Entries(ctx, snap)
		if err != nil {
			return nil, err
		}
		loaded[snap.Day] = entries
		return entries, nil
	}

	week := make([]DailyActivity, 0, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		day := date.Format("2006-01-02")
		record := DailyActivity{
			Day:        date.Format("Mon"),
			Date:       day,
			DailyDelta: DailyDelta{TopGainer: NoGainer},
		}

		if snap := set.ForDate(day); snap != nil {
			current, err := entriesFor(snap)
			if err != nil {
				return nil, err
			}
			previous, err := entriesFor(set.Preceding(day))
			if err != nil {
				return nil, err
			}
			record.DailyDelta = ComputeDailyDelta(current, previous)
			record.HasData = true
		} else {
			logger.Debug("no snapshot for day, emitting placeholder", zap.String("date", day))
		}

		week = append(week, record)
	}
	return week, nil
}
