package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
)

// The two filename conventions the export pipeline has produced over time.
// Both encode the export date as MM_DD_YYYY.
const (
	prefixTestnet     = "testnet_leaderboard_"
	prefixLeaderboard = "leaderboard_"
	snapshotExt       = ".csv"

	dateLayout = "01_02_2006"
)

// DirLocator discovers snapshots by scanning one or more export directories.
// Directories are scanned in parallel; a directory that does not exist is
// skipped (a fresh deployment legitimately has no exports yet), any other
// filesystem failure aborts the scan.
type DirLocator struct {
	dirs   []string
	pool   pond.Pool
	logger *zap.Logger
}

// NewDirLocator returns a locator over the given export directories.
func NewDirLocator(logger *zap.Logger, dirs ...string) *DirLocator {
	workers := len(dirs)
	if workers < 1 {
		workers = 1
	}
	return &DirLocator{
		dirs:   dirs,
		pool:   pond.NewPool(workers),
		logger: logger,
	}
}

// List scans every configured directory, parses snapshot dates out of the
// recognized filenames, and returns the merged result sorted ascending by
// date. Files with unrecognized names or unparsable dates are skipped, never
// fatal.
func (l *DirLocator) List(ctx context.Context) (Set, error) {
	var (
		mu    sync.Mutex
		found Set
	)

	group := l.pool.NewGroupContext(ctx)
	for _, dir := range l.dirs {
		group.SubmitErr(func() error {
			snaps, err := l.scanDir(dir)
			if err != nil {
				return err
			}
			mu.Lock()
			found = append(found, snaps...)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Day < found[j].Day
	})
	return found, nil
}

func (l *DirLocator) scanDir(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("snapshot directory missing, skipping", zap.String("dir", dir))
			return nil, nil
		}
		return nil, fmt.Errorf("scan snapshot dir %s: %w", dir, err)
	}

	var snaps Set
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		date, ok := parseSnapshotName(name)
		if !ok {
			l.logger.Warn("skipping unrecognized snapshot filename",
				zap.String("dir", dir),
				zap.String("file", name))
			continue
		}
		snaps = append(snaps, Snapshot{
			Day:  date.Format("2006-01-02"),
			Date: date,
			Path: filepath.Join(dir, name),
		})
	}
	return snaps, nil
}

// parseSnapshotName extracts the export date from a snapshot filename.
// Returns false for filenames that match neither convention or whose date
// part does not parse.
func parseSnapshotName(name string) (time.Time, bool) {
	if !strings.HasSuffix(name, snapshotExt) {
		return time.Time{}, false
	}
	base := strings.TrimSuffix(name, snapshotExt)

	var datePart string
	switch {
	case strings.HasPrefix(base, prefixTestnet):
		datePart = strings.TrimPrefix(base, prefixTestnet)
	case strings.HasPrefix(base, prefixLeaderboard):
		datePart = strings.TrimPrefix(base, prefixLeaderboard)
	default:
		return time.Time{}, false
	}

	date, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
