package models

import (
	"database/sql"
	"strings"
)

// Game represents an NBA game. Rows start as bare-id stubs created from a
// stats page and are completed later by the detail backfill.
type Game struct {
	GameID        int            `db:"game_id"`
	Date          sql.NullString `db:"date"`
	Time          sql.NullString `db:"time"`
	HomeTeamID    sql.NullInt64  `db:"home_team_id"`
	VisitorTeamID sql.NullInt64  `db:"visitor_team_id"`
	Season        sql.NullInt64  `db:"season"`
}

// GameRef is the bare game sub-object embedded in a stats API record.
type GameRef struct {
	ID int `json:"id"`
}

// TeamRef is the bare team sub-object embedded in API records.
type TeamRef struct {
	ID int `json:"id"`
}

// GameDetail is the full schedule record returned by the game detail endpoint.
type GameDetail struct {
	ID          int     `json:"id"`
	DateTime    string  `json:"datetime"` // e.g. "2022-10-18T00:00:00.000Z"
	HomeTeam    TeamRef `json:"home_team"`
	VisitorTeam TeamRef `json:"visitor_team"`
	Season      int     `json:"season"`
}

// ToGame converts GameDetail (from API) to a Game model ready for the
// detail update. The source defaults unset tip-off times to exact midnight,
// so a midnight time component is stored as NULL rather than a real time.
func (gd *GameDetail) ToGame() *Game {
	game := &Game{
		GameID:        gd.ID,
		HomeTeamID:    sql.NullInt64{Int64: int64(gd.HomeTeam.ID), Valid: true},
		VisitorTeamID: sql.NullInt64{Int64: int64(gd.VisitorTeam.ID), Valid: true},
		Season:        sql.NullInt64{Int64: int64(gd.Season), Valid: true},
	}

	date, tm := SplitDateTime(gd.DateTime)
	if date != "" {
		game.Date = sql.NullString{String: date, Valid: true}
	}
	game.Time = tm

	return game
}

// SplitDateTime splits an ISO timestamp into a date part and a time part.
// A time component of exactly midnight is indistinguishable from an unset
// time in the source data and is returned as NULL.
func SplitDateTime(iso string) (string, sql.NullString) {
	parts := strings.SplitN(iso, "T", 2)
	if len(parts) != 2 {
		return "", sql.NullString{}
	}

	date := parts[0]
	tm := strings.TrimSuffix(parts[1], "Z")
	if strings.HasPrefix(tm, "00:00") {
		return date, sql.NullString{}
	}
	return date, sql.NullString{String: tm, Valid: true}
}
