package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/cache"
	"github.com/briduffy3/si201-final-sports-analysts/internal/client"
	"github.com/briduffy3/si201-final-sports-analysts/internal/metrics"
	"github.com/briduffy3/si201-final-sports-analysts/internal/models"
	"github.com/briduffy3/si201-final-sports-analysts/internal/repository"
)

const sunCacheTTL = 7 * 24 * time.Hour

// SunIngestor fills the daylight tables: sunrise/sunset per arena and, for
// games with a known date and a resolvable venue, per game. Candidates come
// from anti-join selections so already-processed keys are never re-queried.
type SunIngestor struct {
	client    *client.SunClient
	db        *repository.Database
	cache     *cache.RedisCache
	batchSize int
	cap       int
}

// NewSunIngestor creates a sun-time ingestion loop. The cache is optional
// and may be nil.
func NewSunIngestor(c *client.SunClient, db *repository.Database, rc *cache.RedisCache, batchSize, cap int) *SunIngestor {
	return &SunIngestor{client: c, db: db, cache: rc, batchSize: batchSize, cap: cap}
}

// RunArenas processes arenas lacking a daylight record, in batches that each
// commit as one unit, until the cap is reached or no unprocessed arenas
// remain. A per-arena failure is logged and skipped without counting toward
// the processed total.
func (s *SunIngestor) RunArenas(ctx context.Context) (RunSummary, error) {
	var sum RunSummary

	for sum.ArenaDaylightInserted < s.cap {
		arenas, err := s.db.Arenas.ListMissingDaylight(ctx, s.batchSize)
		if err != nil {
			return sum, err
		}
		if len(arenas) == 0 {
			log.Debug().Msg("All arenas processed")
			break
		}

		attempted := false
		err = s.db.WithTx(ctx, func(tx *repository.Database) error {
			for i := range arenas {
				if sum.ArenaDaylightInserted >= s.cap {
					break
				}
				arena := &arenas[i]

				if !arena.HasCoordinates() {
					log.Warn().Str("arena", arena.Name).Msg("Arena has no coordinates, skipping")
					metrics.UnitFailuresTotal.WithLabelValues("sun_arenas").Inc()
					sum.AddErrorf("arena %s: no coordinates", arena.Name)
					continue
				}

				times, err := s.fetchSunTimes(ctx, arena.Latitude.Float64, arena.Longitude.Float64, "")
				if err != nil {
					log.Warn().Err(err).Str("arena", arena.Name).Msg("Sun-time lookup failed, skipping")
					metrics.UnitFailuresTotal.WithLabelValues("sun_arenas").Inc()
					sum.AddErrorf("arena %s: %v", arena.Name, err)
					continue
				}

				inserted, err := tx.Daylight.InsertArenaIfAbsent(ctx, &models.DaylightInfo{
					ArenaID: arena.ID,
					Sunrise: times.Sunrise,
					Sunset:  times.Sunset,
				})
				if err != nil {
					return err
				}
				if inserted {
					sum.ArenaDaylightInserted++
					attempted = true
				}
			}
			return nil
		})
		if err != nil {
			return sum, err
		}

		// Every remaining candidate failed: the anti-join would return the
		// same keys forever, so end the invocation here.
		if !attempted {
			break
		}
	}

	metrics.RowsInsertedTotal.WithLabelValues("daylight_info").Add(float64(sum.ArenaDaylightInserted))
	log.Info().Int("processed", sum.ArenaDaylightInserted).Msg("Arena sun-time ingestion complete")
	return sum, nil
}

// RunGames processes games lacking a daylight record whose date is known
// and whose home arena resolves to known coordinates. The record snapshots
// the date and resolved venue at insertion time.
func (s *SunIngestor) RunGames(ctx context.Context) (RunSummary, error) {
	var sum RunSummary

	for sum.GameDaylightInserted < s.cap {
		games, err := s.db.Daylight.ListGamesMissingDaylight(ctx, s.batchSize)
		if err != nil {
			return sum, err
		}
		if len(games) == 0 {
			log.Debug().Msg("All games processed")
			break
		}

		attempted := false
		err = s.db.WithTx(ctx, func(tx *repository.Database) error {
			for i := range games {
				if sum.GameDaylightInserted >= s.cap {
					break
				}
				game := &games[i]

				info, err := s.lookupGame(ctx, tx, game)
				if err != nil {
					log.Warn().Err(err).Int("game_id", game.GameID).Msg("Game sun-time lookup failed, skipping")
					metrics.UnitFailuresTotal.WithLabelValues("sun_games").Inc()
					sum.AddErrorf("game %d: %v", game.GameID, err)
					continue
				}

				inserted, err := tx.Daylight.InsertGameIfAbsent(ctx, info)
				if err != nil {
					return err
				}
				if inserted {
					sum.GameDaylightInserted++
					attempted = true
				}
			}
			return nil
		})
		if err != nil {
			return sum, err
		}

		if !attempted {
			break
		}
	}

	metrics.RowsInsertedTotal.WithLabelValues("game_daylight_info").Add(float64(sum.GameDaylightInserted))
	log.Info().Int("processed", sum.GameDaylightInserted).Msg("Game sun-time ingestion complete")
	return sum, nil
}

// lookupGame resolves a game's home venue and queries sunrise/sunset for
// the game date at that location. The venue read goes through the tx-scoped
// repos: the store allows a single open connection, so a pool query issued
// while the batch transaction is open would block on it.
func (s *SunIngestor) lookupGame(ctx context.Context, tx *repository.Database, game *models.Game) (*models.GameDaylightInfo, error) {
	team, ok := FranchiseName(int(game.HomeTeamID.Int64))
	if !ok {
		return nil, fmt.Errorf("unknown home team id %d", game.HomeTeamID.Int64)
	}

	arena, err := tx.Arenas.GetByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	if !arena.HasCoordinates() {
		return nil, fmt.Errorf("arena %s has no coordinates", arena.Name)
	}

	times, err := s.fetchSunTimes(ctx, arena.Latitude.Float64, arena.Longitude.Float64, game.Date.String)
	if err != nil {
		return nil, err
	}

	return &models.GameDaylightInfo{
		GameID:    game.GameID,
		Sunrise:   times.Sunrise,
		Sunset:    times.Sunset,
		Date:      game.Date.String,
		Team:      team,
		ArenaName: arena.Name,
		Latitude:  arena.Latitude.Float64,
		Longitude: arena.Longitude.Float64,
	}, nil
}

func (s *SunIngestor) fetchSunTimes(ctx context.Context, lat, lon float64, date string) (*client.SunTimes, error) {
	key := fmt.Sprintf("sun:%.4f:%.4f:%s", lat, lon, date)

	var cached client.SunTimes
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	} else if hit {
		return &cached, nil
	}

	times, err := s.client.FetchSunTimes(ctx, lat, lon, date)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, times, sunCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}

	return times, nil
}
