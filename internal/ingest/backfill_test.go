package ingest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briduffy3/si201-final-sports-analysts/internal/client"
)

// newGameServer serves /games/{id} detail responses, optionally failing a
// chosen set of ids.
func newGameServer(t *testing.T, details map[int]string, fail map[int]bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var gameID int
		_, err := fmt.Sscanf(r.URL.Path, "/games/%d", &gameID)
		require.NoError(t, err)

		if fail[gameID] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		datetime, ok := details[gameID]
		require.True(t, ok, "Unexpected game id %d", gameID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"id":           gameID,
				"datetime":     datetime,
				"home_team":    map[string]int{"id": 2},
				"visitor_team": map[string]int{"id": 14},
				"season":       2022,
			},
		})
	}))
}

func TestGameBackfiller_FillsDetailAndNullsMidnight(t *testing.T) {
	db, ctx := setupTestDB(t)

	for _, id := range []int{100, 200} {
		_, err := db.Games.InsertStub(ctx, id)
		require.NoError(t, err)
	}

	server := newGameServer(t, map[int]string{
		100: "2023-01-15T19:30:00.000Z",
		200: "2023-01-20T00:00:00.000Z", // midnight source time means unknown
	}, nil)
	defer server.Close()

	sc := client.NewStatsClient(server.URL, "test-key", 5*time.Second)
	bf := NewGameBackfiller(sc, db, nil, 25)

	sum, err := bf.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.GamesBackfilled)

	timed, err := db.Games.GetByID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-15", timed.Date.String)
	assert.True(t, timed.Time.Valid)
	assert.True(t, strings.HasPrefix(timed.Time.String, "19:30"))
	assert.Equal(t, int64(2), timed.HomeTeamID.Int64)
	assert.Equal(t, int64(2022), timed.Season.Int64)

	midnight, err := db.Games.GetByID(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-20", midnight.Date.String)
	assert.False(t, midnight.Time.Valid, "Midnight source time is stored as NULL")

	// Both games now carry a date, so nothing is left to backfill.
	ids, err := db.Games.ListMissingDetail(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGameBackfiller_FailedFetchDoesNotCountAgainstCap(t *testing.T) {
	db, ctx := setupTestDB(t)

	for _, id := range []int{1, 2, 3} {
		_, err := db.Games.InsertStub(ctx, id)
		require.NoError(t, err)
	}

	server := newGameServer(t, map[int]string{
		1: "2023-02-01T19:00:00.000Z",
		3: "2023-02-03T20:00:00.000Z",
	}, map[int]bool{2: true})
	defer server.Close()

	sc := client.NewStatsClient(server.URL, "test-key", 5*time.Second)
	bf := NewGameBackfiller(sc, db, nil, 2)

	sum, err := bf.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.GamesBackfilled, "The failed game is skipped, the cap is spent on successes")
	assert.Len(t, sum.Errors, 1)

	ids, err := db.Games.ListMissingDetail(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids, "The failed game remains a stub for the next invocation")
}
