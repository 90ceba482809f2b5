// Package runner orchestrates the collection pipeline: a one-time arena seed
// followed by a fixed number of ingestion passes.
package runner

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/ingest"
	"github.com/briduffy3/si201-final-sports-analysts/internal/metrics"
	"github.com/briduffy3/si201-final-sports-analysts/internal/repository"
)

// Runner drives the full collection cycle. A failure in any one step is
// recorded and the remaining steps still run.
type Runner struct {
	db       *repository.Database
	stats    *ingest.StatsIngestor
	backfill *ingest.GameBackfiller
	sun      *ingest.SunIngestor

	seedPath  string
	totalRuns int
	interval  time.Duration
}

func New(db *repository.Database, stats *ingest.StatsIngestor, backfill *ingest.GameBackfiller, sun *ingest.SunIngestor, seedPath string, totalRuns int, interval time.Duration) *Runner {
	return &Runner{
		db:        db,
		stats:     stats,
		backfill:  backfill,
		sun:       sun,
		seedPath:  seedPath,
		totalRuns: totalRuns,
		interval:  interval,
	}
}

// Run seeds arenas from the secondary database when the arenas table is
// empty, then executes the configured number of ingestion passes with a
// pause between them.
func (r *Runner) Run(ctx context.Context) (ingest.RunSummary, error) {
	total := ingest.RunSummary{}

	copied, err := r.db.Arenas.SeedFrom(ctx, r.seedPath)
	if err != nil {
		log.Warn().Err(err).Str("seed_path", r.seedPath).Msg("Arena seed copy failed, continuing without it")
		total.AddErrorf("arena seed: %v", err)
	} else if copied > 0 {
		log.Info().Int("arenas", copied).Msg("Seeded arenas from secondary database")
	}

	for i := 1; i <= r.totalRuns; i++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		log.Info().Int("run", i).Int("total_runs", r.totalRuns).Msg("Starting collection run")
		r.runOnce(ctx, &total)

		metrics.RunsTotal.Inc()
		metrics.LastRunTimestamp.SetToCurrentTime()

		if i < r.totalRuns {
			if err := sleep(ctx, r.interval); err != nil {
				return total, err
			}
		}
	}

	log.Info().Str("summary", total.Summary()).Msg("Collection complete")
	return total, nil
}

// runOnce executes one pass of all four ingestion steps, containing errors
// so a failing step never aborts the pass.
func (r *Runner) runOnce(ctx context.Context, total *ingest.RunSummary) {
	steps := []struct {
		name string
		fn   func(context.Context) (ingest.RunSummary, error)
	}{
		{"stats", r.stats.Run},
		{"game_backfill", r.backfill.Run},
		{"arena_daylight", r.sun.RunArenas},
		{"game_daylight", r.sun.RunGames},
	}

	for _, step := range steps {
		sum, err := step.fn(ctx)
		total.Merge(sum)
		if err != nil {
			log.Error().Err(err).Str("step", step.name).Msg("Collection step failed")
			total.AddErrorf("%s: %v", step.name, err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
