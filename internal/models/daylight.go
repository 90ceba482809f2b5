package models

// DaylightInfo is the per-arena sunrise/sunset record, keyed by arena id.
// Created once per arena; never updated.
type DaylightInfo struct {
	ArenaID int64  `db:"arena_id"`
	Sunrise string `db:"sunrise"`
	Sunset  string `db:"sunset"`
}

// GameDaylightInfo is the per-game sunrise/sunset record, keyed by game id.
// It carries a denormalized snapshot of the game date and the resolved arena
// at insertion time so the report does not have to re-resolve venues.
type GameDaylightInfo struct {
	GameID    int     `db:"game_id"`
	Sunrise   string  `db:"sunrise"`
	Sunset    string  `db:"sunset"`
	Date      string  `db:"date"`
	Team      string  `db:"team"`
	ArenaName string  `db:"arena_name"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
}
