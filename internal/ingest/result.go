// Package ingest implements the incremental, idempotent, capped ingestion
// loops: stats pages, game-detail backfill and sunrise/sunset lookups.
package ingest

import "fmt"

// RunSummary tracks insert counts and contained per-unit failures across
// one or more ingestion invocations.
type RunSummary struct {
	StatsInserted         int
	PlayersInserted       int
	GameStubsInserted     int
	DuplicatesSkipped     int
	GamesBackfilled       int
	ArenaDaylightInserted int
	GameDaylightInserted  int
	Errors                []string
}

// Merge folds another summary into this one.
func (r *RunSummary) Merge(other RunSummary) {
	r.StatsInserted += other.StatsInserted
	r.PlayersInserted += other.PlayersInserted
	r.GameStubsInserted += other.GameStubsInserted
	r.DuplicatesSkipped += other.DuplicatesSkipped
	r.GamesBackfilled += other.GamesBackfilled
	r.ArenaDaylightInserted += other.ArenaDaylightInserted
	r.GameDaylightInserted += other.GameDaylightInserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted per-unit failure.
func (r *RunSummary) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable one-line summary.
func (r *RunSummary) Summary() string {
	return fmt.Sprintf(
		"stats=%d players=%d game_stubs=%d duplicates=%d backfilled=%d arena_daylight=%d game_daylight=%d errors=%d",
		r.StatsInserted, r.PlayersInserted, r.GameStubsInserted, r.DuplicatesSkipped,
		r.GamesBackfilled, r.ArenaDaylightInserted, r.GameDaylightInserted, len(r.Errors),
	)
}
