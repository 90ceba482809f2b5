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

const gameDetailCacheTTL = 24 * time.Hour

// GameBackfiller completes game stubs missing schedule metadata by fetching
// per-game detail, bounded by a per-invocation cap.
type GameBackfiller struct {
	client *client.StatsClient
	db     *repository.Database
	cache  *cache.RedisCache
	cap    int
}

// NewGameBackfiller creates a game-detail backfill loop. The cache is
// optional and may be nil.
func NewGameBackfiller(c *client.StatsClient, db *repository.Database, rc *cache.RedisCache, cap int) *GameBackfiller {
	return &GameBackfiller{client: c, db: db, cache: rc, cap: cap}
}

// Run fills date/time/teams/season for up to cap games. A failed fetch for
// one game is skipped without aborting the loop; it counts against neither
// the result nor the cap.
func (b *GameBackfiller) Run(ctx context.Context) (RunSummary, error) {
	var sum RunSummary

	gameIDs, err := b.db.Games.ListMissingDetail(ctx)
	if err != nil {
		return sum, err
	}

	for _, gameID := range gameIDs {
		if sum.GamesBackfilled >= b.cap {
			break
		}

		detail, err := b.fetchDetail(ctx, gameID)
		if err != nil {
			log.Warn().Err(err).Int("game_id", gameID).Msg("Game detail fetch failed, skipping")
			metrics.UnitFailuresTotal.WithLabelValues("backfill").Inc()
			sum.AddErrorf("game %d detail: %v", gameID, err)
			continue
		}

		game := detail.ToGame()
		// The detail endpoint may key the response by its own id; the
		// update must target the stub we selected.
		game.GameID = gameID

		if err := b.db.Games.UpdateDetail(ctx, game); err != nil {
			return sum, err
		}
		sum.GamesBackfilled++
	}

	log.Info().Int("updated", sum.GamesBackfilled).Msg("Game detail backfill complete")
	return sum, nil
}

func (b *GameBackfiller) fetchDetail(ctx context.Context, gameID int) (*models.GameDetail, error) {
	key := fmt.Sprintf("game:%d", gameID)

	var cached models.GameDetail
	hit, err := b.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	} else if hit {
		return &cached, nil
	}

	detail, err := b.client.FetchGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := b.cache.Set(ctx, key, detail, gameDetailCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}

	return detail, nil
}
