package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const sampleCSV = "rank,name,invited_by,proofs,cycles,stars\n1,@x,-,10,100,5\n"

func TestParseSnapshotName(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantDay string
		wantOK  bool
	}{
		{"leaderboard convention", "leaderboard_06_13_2024.csv", "2024-06-13", true},
		{"testnet convention", "testnet_leaderboard_01_02_2024.csv", "2024-01-02", true},
		{"wrong extension", "leaderboard_06_13_2024.txt", "", false},
		{"unknown prefix", "export_06_13_2024.csv", "", false},
		{"unparsable date", "leaderboard_13_45_2024.csv", "", false},
		{"no date", "leaderboard_.csv", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, ok := parseSnapshotName(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantDay, date.Format("2006-01-02"))
			}
		})
	}
}

func TestListMergesDirectories(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, dirA, "leaderboard_06_12_2024.csv", sampleCSV)
	writeFile(t, dirB, "testnet_leaderboard_06_10_2024.csv", sampleCSV)
	writeFile(t, dirB, "leaderboard_06_11_2024.csv", sampleCSV)
	writeFile(t, dirB, "notes.md", "ignored")

	loc := NewDirLocator(zaptest.NewLogger(t), dirA, dirB)
	set, err := loc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, set, 3)
	assert.Equal(t, "2024-06-10", set[0].Day)
	assert.Equal(t, "2024-06-11", set[1].Day)
	assert.Equal(t, "2024-06-12", set[2].Day)
}

func TestListToleratesMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "leaderboard_06_12_2024.csv", sampleCSV)

	loc := NewDirLocator(zaptest.NewLogger(t), dir, filepath.Join(dir, "does-not-exist"))
	set, err := loc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, set, 1)
}

func TestListEmptySource(t *testing.T) {
	loc := NewDirLocator(zaptest.NewLogger(t), t.TempDir())
	set, err := loc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestForDateAndPreceding(t *testing.T) {
	set := Set{
		{Day: "2024-06-10"},
		{Day: "2024-06-12"},
		{Day: "2024-06-14"},
	}

	require.NotNil(t, set.ForDate("2024-06-12"))
	assert.Nil(t, set.ForDate("2024-06-11"))

	prev := set.Preceding("2024-06-14")
	require.NotNil(t, prev)
	assert.Equal(t, "2024-06-12", prev.Day)

	// A gap day still resolves to the latest earlier snapshot.
	prev = set.Preceding("2024-06-13")
	require.NotNil(t, prev)
	assert.Equal(t, "2024-06-12", prev.Day)

	assert.Nil(t, set.Preceding("2024-06-10"))
}
