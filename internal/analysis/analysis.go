// Package analysis classifies game stat lines as before or after sunset and
// aggregates per-player performance in each category.
package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/repository"
)

// fallbackOffset is applied when the sunset timestamp carries no usable
// UTC offset.
const fallbackOffset = -5 * time.Hour

// CategoryStats are per-player averages within one sunset category.
type CategoryStats struct {
	Games       int
	AvgPoints   float64
	AvgRebounds float64
	AvgAssists  float64
}

// PlayerComparison is the before/after comparison for one player. Only
// players with at least one game in both categories are reported.
type PlayerComparison struct {
	PlayerID int
	Name     string

	Before CategoryStats
	After  CategoryStats

	PointsDiff   float64
	ReboundsDiff float64
	AssistsDiff  float64
}

// ClassifyBeforeSunset reports whether a game tipped off before sunset.
//
// The stored start time is UTC; local start time is computed by applying
// the sunset timestamp's UTC offset (fixed UTC-5 when the sunset carries
// none), then comparing clock time-of-day only. Comparing clock times and
// ignoring the calendar date is a known source ambiguity preserved from the
// upstream data convention: a conversion that crosses midnight is compared
// against the wrong day's sunset.
func ClassifyBeforeSunset(gameDate, gameTime, sunset string) (bool, bool) {
	sunsetT, ok := parseTimestamp(sunset)
	if !ok {
		return false, false
	}

	gameUTC, ok := parseGameStart(gameDate, gameTime)
	if !ok {
		return false, false
	}

	_, offset := sunsetT.Zone()
	var local time.Time
	if offset != 0 {
		local = gameUTC.Add(time.Duration(offset) * time.Second)
	} else {
		local = gameUTC.Add(fallbackOffset)
	}

	return clockSeconds(local) < clockSeconds(sunsetT), true
}

// Analyze aggregates joined stat rows into per-player before/after-sunset
// comparisons, ranked by absolute point difference.
func Analyze(rows []repository.SunsetRow) []PlayerComparison {
	type accum struct {
		name                 string
		beforeGames          int
		beforePts, beforeReb float64
		beforeAst            float64
		afterGames           int
		afterPts, afterReb   float64
		afterAst             float64
	}

	players := make(map[int]*accum)
	order := make([]int, 0)

	for _, row := range rows {
		before, ok := ClassifyBeforeSunset(row.Date, row.Time, row.Sunset)
		if !ok {
			log.Debug().Int("player_id", row.PlayerID).Msg("Unparseable row skipped")
			continue
		}

		a, exists := players[row.PlayerID]
		if !exists {
			a = &accum{name: row.FirstName + " " + row.LastName}
			players[row.PlayerID] = a
			order = append(order, row.PlayerID)
		}

		pts := float64(row.Points.Int64)
		reb := float64(row.Rebounds.Int64)
		ast := float64(row.Assists.Int64)

		if before {
			a.beforeGames++
			a.beforePts += pts
			a.beforeReb += reb
			a.beforeAst += ast
		} else {
			a.afterGames++
			a.afterPts += pts
			a.afterReb += reb
			a.afterAst += ast
		}
	}

	results := make([]PlayerComparison, 0, len(players))
	for _, id := range order {
		a := players[id]
		if a.beforeGames == 0 || a.afterGames == 0 {
			continue
		}

		before := CategoryStats{
			Games:       a.beforeGames,
			AvgPoints:   a.beforePts / float64(a.beforeGames),
			AvgRebounds: a.beforeReb / float64(a.beforeGames),
			AvgAssists:  a.beforeAst / float64(a.beforeGames),
		}
		after := CategoryStats{
			Games:       a.afterGames,
			AvgPoints:   a.afterPts / float64(a.afterGames),
			AvgRebounds: a.afterReb / float64(a.afterGames),
			AvgAssists:  a.afterAst / float64(a.afterGames),
		}

		results = append(results, PlayerComparison{
			PlayerID:     id,
			Name:         a.name,
			Before:       before,
			After:        after,
			PointsDiff:   after.AvgPoints - before.AvgPoints,
			ReboundsDiff: after.AvgRebounds - before.AvgRebounds,
			AssistsDiff:  after.AvgAssists - before.AvgAssists,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return math.Abs(results[i].PointsDiff) > math.Abs(results[j].PointsDiff)
	})

	return results
}

// parseTimestamp parses an ISO timestamp that may or may not carry a UTC
// offset.
func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseGameStart combines the stored date and UTC time-of-day strings.
func parseGameStart(date, tm string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, date+"T"+tm); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func clockSeconds(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
