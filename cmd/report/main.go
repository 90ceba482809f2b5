// Command report runs the before/after-sunset analysis over collected data
// and writes the text report and chart image.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/analysis"
	"github.com/briduffy3/si201-final-sports-analysts/internal/config"
	"github.com/briduffy3/si201-final-sports-analysts/internal/repository"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting sunset analysis report")

	cfg := config.MustLoad()

	ctx := context.Background()

	db, err := repository.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	rows, err := db.Stats.ListWithDaylight(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load stat rows")
	}
	log.Info().Int("rows", len(rows)).Msg("Stat rows loaded")

	results := analysis.Analyze(rows)
	log.Info().Int("players", len(results)).Msg("Players with games in both categories")

	f, err := os.Create(cfg.ReportTextPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create report file")
	}
	if err := analysis.WriteReport(f, results); err != nil {
		f.Close()
		log.Fatal().Err(err).Msg("Failed to write report")
	}
	if err := f.Close(); err != nil {
		log.Fatal().Err(err).Msg("Failed to close report file")
	}
	log.Info().Str("path", cfg.ReportTextPath).Msg("Text report written")

	if len(results) == 0 {
		log.Warn().Msg("No comparison data, skipping charts")
		return
	}

	if err := analysis.RenderCharts(cfg.ReportChartPath, results); err != nil {
		log.Fatal().Err(err).Msg("Failed to render charts")
	}
	log.Info().Str("path", cfg.ReportChartPath).Msg("Charts written")
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
