package ingest

// franchiseNames maps the stats source's team ids to franchise names as
// they appear in the arena directory's team column. The source assigns ids
// alphabetically by full franchise name.
var franchiseNames = map[int]string{
	1:  "Atlanta Hawks",
	2:  "Boston Celtics",
	3:  "Brooklyn Nets",
	4:  "Charlotte Hornets",
	5:  "Chicago Bulls",
	6:  "Cleveland Cavaliers",
	7:  "Dallas Mavericks",
	8:  "Denver Nuggets",
	9:  "Detroit Pistons",
	10: "Golden State Warriors",
	11: "Houston Rockets",
	12: "Indiana Pacers",
	13: "LA Clippers",
	14: "Los Angeles Lakers",
	15: "Memphis Grizzlies",
	16: "Miami Heat",
	17: "Milwaukee Bucks",
	18: "Minnesota Timberwolves",
	19: "New Orleans Pelicans",
	20: "New York Knicks",
	21: "Oklahoma City Thunder",
	22: "Orlando Magic",
	23: "Philadelphia 76ers",
	24: "Phoenix Suns",
	25: "Portland Trail Blazers",
	26: "Sacramento Kings",
	27: "San Antonio Spurs",
	28: "Toronto Raptors",
	29: "Utah Jazz",
	30: "Washington Wizards",
}

// FranchiseName resolves a stats-source team id to its franchise name.
func FranchiseName(teamID int) (string, bool) {
	name, ok := franchiseNames[teamID]
	return name, ok
}
