package stats

import (
	"fmt"
	"testing"

	"github.com/prover-network/proverstats/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func population(n int) []snapshot.Entry {
	pop := make([]snapshot.Entry, n)
	for i := range pop {
		pop[i] = snapshot.Entry{
			Rank:   fmt.Sprintf("%d", i+1),
			Name:   fmt.Sprintf("@user%d", i+1),
			Proofs: "100",
			Cycles: "1000",
			Stars:  "50",
		}
	}
	return pop
}

func TestComputeIndividualStatsNotFound(t *testing.T) {
	_, err := ComputeIndividualStats("@ghost", population(10))
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestComputeIndividualStatsAtMean(t *testing.T) {
	got, err := ComputeIndividualStats("@user5", population(10))
	require.NoError(t, err)

	// Every member sits exactly at the mean: linear score of 20.
	assert.Equal(t, Progress{Proofs: 20, Cycles: 20, Stars: 20}, got.Progress)
}

func TestProgressScoreBounds(t *testing.T) {
	// 100 members, total 1000 -> mean 10.
	assert.Equal(t, 1, progressScore(0, 1000, 100))
	assert.Equal(t, 100, progressScore(1000, 1000, 100)) // 2000 uncapped
	assert.Equal(t, 20, progressScore(10, 1000, 100))
	assert.Equal(t, 2, progressScore(1, 1000, 100))

	// Degenerate populations clamp to the floor, never divide by zero.
	assert.Equal(t, 1, progressScore(5, 0, 100))
	assert.Equal(t, 1, progressScore(5, 100, 0))
}

func TestFormatPercentile(t *testing.T) {
	tests := []struct {
		name string
		rank int
		size int
		want string
	}{
		{"common case floors to integer", 370, 1000, "37"},
		{"floor not round", 376, 1000, "37"},
		{"rank 2 of 1000 gets three decimals", 2, 1000, "0.200"},
		{"rank 3 boundary gets three decimals", 3, 1000, "0.300"},
		{"rank 4 under 1% gets two decimals", 4, 1000, "0.40"},
		{"exactly 1% with low rank", 1, 100, "1.000"},
		{"exactly 1% with rank above 3", 10, 1000, "1.00"},
		{"just above 1%", 11, 1000, "1"},
		{"last place", 1000, 1000, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPercentile(tt.rank, tt.size))
		})
	}
}

func TestComputeIndividualStatsDecoratedRank(t *testing.T) {
	pop := population(1000)
	pop[1].Rank = "#2" // decoration must not break the rank parse

	got, err := ComputeIndividualStats("@user2", pop)
	require.NoError(t, err)
	assert.Equal(t, "0.200", got.Percentile)
}

func TestComputeIndividualStatsUnparsableRankFallsBackToPosition(t *testing.T) {
	pop := population(1000)
	pop[4].Rank = "n/a"

	got, err := ComputeIndividualStats("@user5", pop)
	require.NoError(t, err)
	assert.Equal(t, "0.50", got.Percentile)
}
