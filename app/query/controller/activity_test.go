package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/gorilla/mux"
	"github.com/prover-network/proverstats/app/query/types"
	"github.com/prover-network/proverstats/pkg/snapshot"
	"github.com/prover-network/proverstats/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeLocator struct {
	set     snapshot.Set
	entries map[string][]snapshot.Entry
}

func (f *fakeLocator) List(ctx context.Context) (snapshot.Set, error) {
	return f.set, nil
}

func (f *fakeLocator) Entries(ctx context.Context, snap *snapshot.Snapshot) ([]snapshot.Entry, error) {
	return f.entries[snap.Day], nil
}

func newTestController(t *testing.T, loc snapshot.Locator) *Controller {
	t.Helper()
	return NewController(&types.App{
		Snapshots: loc,
		Logger:    zaptest.NewLogger(t),
	})
}

func TestHandleWeekActivityMissingStart(t *testing.T) {
	c := newTestController(t, &fakeLocator{})
	w := httptest.NewRecorder()
	c.HandleWeekActivity(w, httptest.NewRequest("GET", "/api/activity/week", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleWeekActivityInvalidStart(t *testing.T) {
	c := newTestController(t, &fakeLocator{})
	w := httptest.NewRecorder()
	c.HandleWeekActivity(w, httptest.NewRequest("GET", "/api/activity/week?start=13-06-2024", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleWeekActivityEmptySource(t *testing.T) {
	c := newTestController(t, &fakeLocator{})
	w := httptest.NewRecorder()
	c.HandleWeekActivity(w, httptest.NewRequest("GET", "/api/activity/week?start=2024-06-13", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []stats.DailyActivity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 7)
	assert.Equal(t, "2024-06-10", body.Data[0].Date)
	assert.Equal(t, "2024-06-16", body.Data[6].Date)
	for _, rec := range body.Data {
		assert.False(t, rec.HasData)
	}
}

func TestHandleUserStatsNotFound(t *testing.T) {
	loc := &fakeLocator{
		set: snapshot.Set{{Day: "2024-06-13"}},
		entries: map[string][]snapshot.Entry{
			"2024-06-13": {{Rank: "1", Name: "@someone", Proofs: "10", Cycles: "100", Stars: "5"}},
		},
	}
	c := newTestController(t, loc)

	r := httptest.NewRequest("GET", "/api/leaderboard/users/@ghost", nil)
	r = muxSetVars(r, map[string]string{"name": "@ghost"})
	w := httptest.NewRecorder()
	c.HandleUserStats(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleUserStatsFound(t *testing.T) {
	loc := &fakeLocator{
		set: snapshot.Set{{Day: "2024-06-12"}, {Day: "2024-06-13"}},
		entries: map[string][]snapshot.Entry{
			"2024-06-13": {
				{Rank: "1", Name: "@alice", Proofs: "10", Cycles: "100", Stars: "5"},
				{Rank: "2", Name: "@bob", Proofs: "10", Cycles: "100", Stars: "5"},
			},
		},
	}
	c := newTestController(t, loc)

	r := httptest.NewRequest("GET", "/api/leaderboard/users/@alice", nil)
	r = muxSetVars(r, map[string]string{"name": "@alice"})
	w := httptest.NewRecorder()
	c.HandleUserStats(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data     stats.IndividualStats `json:"data"`
		Snapshot string                `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2024-06-13", body.Snapshot) // latest snapshot wins
	assert.Equal(t, "@alice", body.Data.Entry.Name)
	assert.Equal(t, "50", body.Data.Percentile)
}

func muxSetVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}
