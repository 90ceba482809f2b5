package models

import "database/sql"

// Arena is one home venue scraped from the arena directory.
// Identity is the arena name; re-scraping updates team, city and
// coordinates in place rather than duplicating the row.
type Arena struct {
	ID        int64           `db:"id"`
	Name      string          `db:"arena_name"`
	Team      sql.NullString  `db:"team"`
	City      sql.NullString  `db:"city"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
}

// HasCoordinates reports whether both latitude and longitude were resolved.
func (a *Arena) HasCoordinates() bool {
	return a.Latitude.Valid && a.Longitude.Valid
}
