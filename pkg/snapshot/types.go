package snapshot

import (
	"context"
	"time"
)

// Entry is one participant row inside a snapshot export. All fields are kept
// as text exactly as exported; numeric fields may carry thousands separators
// and are normalized at compute time, never at decode time.
type Entry struct {
	Rank      string `json:"rank"`
	Name      string `json:"name"`
	InvitedBy string `json:"invitedBy"`
	Proofs    string `json:"proofs"`
	Cycles    string `json:"cycles"`
	Stars     string `json:"stars"`
}

// NoReferrer is the export's sentinel for "not invited by anyone".
const NoReferrer = "-"

// Snapshot identifies one point-in-time population export by calendar day.
// Entries are loaded lazily through the Locator so listing stays cheap.
type Snapshot struct {
	// Day is the canonical YYYY-MM-DD form of the snapshot date. Date
	// lookups compare this string, not timestamps, so timezone drift can
	// never shift a snapshot across midnight.
	Day  string
	Date time.Time
	Path string
}

// Set is the collection of known snapshots, ordered ascending by date.
type Set []Snapshot

// ForDate returns the snapshot exported on the given calendar day, or nil.
func (s Set) ForDate(day string) *Snapshot {
	for i := range s {
		if s[i].Day == day {
			return &s[i]
		}
	}
	return nil
}

// Preceding returns the chronologically latest snapshot strictly before the
// given calendar day, or nil when none exists (the first day in the dataset
// has no predecessor).
func (s Set) Preceding(day string) *Snapshot {
	var found *Snapshot
	for i := range s {
		if s[i].Day < day {
			found = &s[i]
		}
	}
	return found
}

// Locator is the snapshot-discovery capability. The filesystem implementation
// scans export directories; a table-backed index can replace it without
// touching any of the delta or ranking logic.
type Locator interface {
	// List returns all known snapshots sorted ascending by date. An empty
	// set is a valid result, not an error.
	List(ctx context.Context) (Set, error)
	// Entries materializes the full population of one snapshot.
	Entries(ctx context.Context, snap *Snapshot) ([]Entry, error)
}
