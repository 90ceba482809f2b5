// Command scrapearenas builds the arena seed database from the public arena
// directory page and exports the rows to CSV.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/config"
	"github.com/briduffy3/si201-final-sports-analysts/internal/models"
	"github.com/briduffy3/si201-final-sports-analysts/internal/repository"
	"github.com/briduffy3/si201-final-sports-analysts/internal/scrape"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting arena scraper")

	cfg := config.MustLoad()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	scraper := scrape.NewScraper(30*time.Second, cfg.ScrapeDelay)
	arenas, err := scraper.ScrapeArenas(ctx, cfg.ArenaDirectoryURL)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.ArenaDirectoryURL).Msg("Failed to scrape arena directory")
	}
	log.Info().Int("count", len(arenas)).Msg("Arenas scraped")

	db, err := repository.Open(ctx, cfg.ArenaSeedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open seed database")
	}
	defer db.Close()

	saved := 0
	for i := range arenas {
		if err := db.Arenas.Upsert(ctx, &arenas[i]); err != nil {
			log.Error().Err(err).Str("arena", arenas[i].Name).Msg("Failed to save arena")
			continue
		}
		saved++
	}
	log.Info().Int("count", saved).Str("path", cfg.ArenaSeedPath).Msg("Arenas saved to seed database")

	if err := writeCSV(cfg.ArenaCSVPath, arenas); err != nil {
		log.Fatal().Err(err).Msg("Failed to write arena CSV")
	}
	log.Info().Str("path", cfg.ArenaCSVPath).Msg("Arena CSV written")
}

func writeCSV(path string, arenas []models.Arena) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"arena_name", "team", "city", "latitude", "longitude"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, a := range arenas {
		lat, lon := "", ""
		if a.Latitude.Valid {
			lat = strconv.FormatFloat(a.Latitude.Float64, 'f', 6, 64)
		}
		if a.Longitude.Valid {
			lon = strconv.FormatFloat(a.Longitude.Float64, 'f', 6, 64)
		}
		record := []string{a.Name, a.Team.String, a.City.String, lat, lon}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
