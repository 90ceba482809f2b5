package models

import "database/sql"

// GameStat is a single player box-score line for one game.
// Rows are immutable once inserted; stat_id is the external identity.
type GameStat struct {
	StatID   int           `db:"stat_id"`
	PlayerID int           `db:"player_id"`
	GameID   int           `db:"game_id"`
	Points   sql.NullInt64 `db:"pts"`
	Rebounds sql.NullInt64 `db:"reb"`
	Assists  sql.NullInt64 `db:"ast"`
}

// StatInput is one record of a stats API page, with the embedded
// player, team and game sub-objects.
type StatInput struct {
	ID     int         `json:"id"`
	Points *int        `json:"pts"`
	Reb    *int        `json:"reb"`
	Ast    *int        `json:"ast"`
	Player PlayerInput `json:"player"`
	Team   TeamRef     `json:"team"`
	Game   GameRef     `json:"game"`
}

// ToStat converts StatInput (from API) to a GameStat model.
func (si *StatInput) ToStat() *GameStat {
	stat := &GameStat{
		StatID:   si.ID,
		PlayerID: si.Player.ID,
		GameID:   si.Game.ID,
	}
	if si.Points != nil {
		stat.Points = sql.NullInt64{Int64: int64(*si.Points), Valid: true}
	}
	if si.Reb != nil {
		stat.Rebounds = sql.NullInt64{Int64: int64(*si.Reb), Valid: true}
	}
	if si.Ast != nil {
		stat.Assists = sql.NullInt64{Int64: int64(*si.Ast), Valid: true}
	}
	return stat
}
