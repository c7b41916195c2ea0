package snapshot

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Entries opens the snapshot file and decodes its rows. Individually
// malformed rows are skipped with a warning; an unreadable file is a
// collaborator failure and propagates.
func (l *DirLocator) Entries(ctx context.Context, snap *Snapshot) ([]Entry, error) {
	f, err := os.Open(snap.Path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", snap.Path, err)
	}
	defer func() { _ = f.Close() }()

	return decodeEntries(f, l.logger)
}

// Snapshot exports carry this header; column order is not trusted, the
// header row is.
var entryColumns = []string{"rank", "name", "invited_by", "proofs", "cycles", "stars"}

func decodeEntries(r io.Reader, logger *zap.Logger) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range entryColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("snapshot header missing column %q", col)
		}
	}

	field := func(row []string, col string) (string, bool) {
		i := idx[col]
		if i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var entries []Entry
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader surfaces quoting defects per record; skip the
			// record, keep the rest of the snapshot.
			logger.Warn("skipping malformed snapshot row",
				zap.Int("line", line),
				zap.Error(err))
			continue
		}

		var e Entry
		var ok bool
		if e.Rank, ok = field(row, "rank"); !ok {
			logger.Warn("skipping short snapshot row", zap.Int("line", line))
			continue
		}
		e.Name, _ = field(row, "name")
		e.InvitedBy, _ = field(row, "invited_by")
		e.Proofs, _ = field(row, "proofs")
		e.Cycles, _ = field(row, "cycles")
		e.Stars, _ = field(row, "stars")
		if e.Name == "" {
			logger.Warn("skipping snapshot row without a name", zap.Int("line", line))
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
