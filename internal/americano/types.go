package americano

// MatchType describes the shape of a matchup within a round.
type MatchType string

const (
	MatchTypeDoubles MatchType = "2v2"
	MatchTypeSingles MatchType = "1v1"
	MatchTypeOneVTwo MatchType = "1v2"
	MatchTypeSitout  MatchType = "sitout"
)

// Player is a participant in a tournament. UID is the identity, Name is for display only.
type Player struct {
	UID  string `json:"uid" msgpack:"uid"`
	Name string `json:"name" msgpack:"name"`
}

// Matchup is a single entry in a generated round plan.
type Matchup struct {
	Round int       `json:"round" msgpack:"round"`
	Team1 []Player  `json:"team1" msgpack:"team1"`
	Team2 []Player  `json:"team2" msgpack:"team2"`
	Type  MatchType `json:"type" msgpack:"type"`
}

// Points is the outcome of hybrid scoring for a finished match.
type Points struct {
	Team1Points int  `json:"team1Points"`
	Team2Points int  `json:"team2Points"`
	Team1Win    bool `json:"team1Win"`
}
