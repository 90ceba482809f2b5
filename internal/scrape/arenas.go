// Package scrape extracts the arena directory (name, team, city,
// coordinates) from an HTML page listing arenas in a table.
package scrape

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/models"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

// Scraper fetches and parses the arena directory page.
type Scraper struct {
	httpClient *http.Client
	userAgent  string
	delay      time.Duration
}

// NewScraper creates an arena directory scraper. delay paces per-arena
// page follows when the directory row carries no coordinates.
func NewScraper(timeout, delay time.Duration) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  defaultUserAgent,
		delay:      delay,
	}
}

// ScrapeArenas fetches the directory page and returns one Arena per table
// row. Rows whose coordinates cannot be resolved are returned with NULL
// latitude/longitude rather than dropped.
func (s *Scraper) ScrapeArenas(ctx context.Context, pageURL string) ([]models.Arena, error) {
	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch arena directory: %w", err)
	}

	table, err := findArenaTable(doc)
	if err != nil {
		return nil, err
	}

	arenaIdx, teamIdx, locationIdx, err := findColumns(table)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page URL: %w", err)
	}

	var arenas []models.Arena
	maxIdx := arenaIdx
	if teamIdx > maxIdx {
		maxIdx = teamIdx
	}
	if locationIdx > maxIdx {
		maxIdx = locationIdx
	}

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}

		cells := row.Find("td, th")
		if cells.Length() <= maxIdx {
			return
		}

		name := strings.TrimSpace(cells.Eq(arenaIdx).Text())
		if name == "" {
			return
		}

		team := strings.TrimSpace(cells.Eq(teamIdx).Text())
		locationCell := cells.Eq(locationIdx)
		locationText := strings.TrimSpace(locationCell.Text())

		// City is conventionally the text before the first comma.
		city := strings.TrimSpace(strings.SplitN(locationText, ",", 2)[0])

		lat, lon, ok := ResolveCoordinates(locationCell)
		if !ok {
			lat, lon, ok = s.followArenaLink(ctx, base, cells.Eq(arenaIdx))
		}

		arena := models.Arena{
			Name: name,
			Team: sql.NullString{String: team, Valid: team != ""},
			City: sql.NullString{String: city, Valid: city != ""},
		}
		if ok {
			arena.Latitude = sql.NullFloat64{Float64: lat, Valid: true}
			arena.Longitude = sql.NullFloat64{Float64: lon, Valid: true}
		}

		arenas = append(arenas, arena)
	})

	log.Info().Int("count", len(arenas)).Msg("Arena directory scraped")
	return arenas, nil
}

// followArenaLink fetches the linked per-arena page and looks for a geo
// coordinate span there. Failures are tolerated: the arena simply keeps
// unresolved coordinates.
func (s *Scraper) followArenaLink(ctx context.Context, base *url.URL, cell *goquery.Selection) (float64, float64, bool) {
	href, exists := cell.Find("a").First().Attr("href")
	if !exists || href == "" {
		return 0, 0, false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return 0, 0, false
	}
	arenaURL := base.ResolveReference(ref).String()

	// Politeness delay before the extra page fetch.
	select {
	case <-ctx.Done():
		return 0, 0, false
	case <-time.After(s.delay):
	}

	doc, err := s.fetchDocument(ctx, arenaURL)
	if err != nil {
		log.Warn().Err(err).Str("url", arenaURL).Msg("Arena page fetch failed")
		return 0, 0, false
	}

	span := doc.Find("span.geo").First()
	if span.Length() == 0 {
		span = doc.Find("span.geo-dec").First()
	}
	if span.Length() == 0 {
		return 0, 0, false
	}

	if lat, lon, ok := parseGeoSpan(span.Text()); ok {
		return lat, lon, true
	}
	return parseTokenPair(span.Text())
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// findArenaTable locates the wikitable whose header row mentions both an
// arena and a team column.
func findArenaTable(doc *goquery.Document) (*goquery.Selection, error) {
	var table *goquery.Selection

	doc.Find("table.wikitable").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		header := t.Find("tr").First()
		if header.Length() == 0 {
			return true
		}

		var names []string
		header.Find("th").Each(func(_ int, th *goquery.Selection) {
			names = append(names, strings.TrimSpace(th.Text()))
		})
		headerText := strings.ToLower(strings.Join(names, " "))

		if strings.Contains(headerText, "arena") && strings.Contains(headerText, "team") {
			table = t
			return false
		}
		return true
	})

	if table == nil {
		return nil, fmt.Errorf("could not find arena table on the page")
	}
	return table, nil
}

// findColumns resolves the arena, team and location column indices from the
// header row by header text.
func findColumns(table *goquery.Selection) (int, int, int, error) {
	arenaIdx, teamIdx, locationIdx := -1, -1, -1

	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		h := strings.ToLower(strings.TrimSpace(th.Text()))
		if strings.Contains(h, "arena") && arenaIdx == -1 {
			arenaIdx = i
		}
		if strings.Contains(h, "team") && teamIdx == -1 {
			teamIdx = i
		}
		if (strings.Contains(h, "location") || strings.Contains(h, "city")) && locationIdx == -1 {
			locationIdx = i
		}
	})

	if arenaIdx == -1 || teamIdx == -1 || locationIdx == -1 {
		return 0, 0, 0, fmt.Errorf("could not find arena/team/location columns in the table header")
	}
	return arenaIdx, teamIdx, locationIdx, nil
}
