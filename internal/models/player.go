package models

// Player represents an NBA player tracked by the collector.
// Rows are created on first sighting in a stats page and never refreshed.
type Player struct {
	PlayerID  int    `db:"player_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Position  string `db:"position"`
	TeamID    int    `db:"team_id"`
}

// PlayerInput is the player sub-object embedded in a stats API record.
type PlayerInput struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
}

// ToPlayer converts PlayerInput (from API) to a Player model.
// The team id comes from the sibling team object of the stat record.
func (pi *PlayerInput) ToPlayer(teamID int) *Player {
	return &Player{
		PlayerID:  pi.ID,
		FirstName: pi.FirstName,
		LastName:  pi.LastName,
		Position:  pi.Position,
		TeamID:    teamID,
	}
}
