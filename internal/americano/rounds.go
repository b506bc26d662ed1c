package americano

import "fmt"

const groupSize = 4

// GenerateRounds builds the Americano round plan for the given roster.
//
// Players are taken in roster order. Every round the n%4 "extras" are chosen by
// rotating through roster positions, the remaining players are cut into groups
// of four and paired with one of the three canonical partnerships (round%3).
// Extras are emitted last in their round as a sitout, a 1v1 or a 1v2.
// A roster with fewer than four players yields no rounds.
func GenerateRounds(players []Player) []Matchup {
	n := len(players)
	if n < groupSize {
		return nil
	}
	extras := n % groupSize
	if n-extras < groupSize {
		return nil
	}

	roundsCount := n
	if extras == 0 {
		roundsCount = 3
	}

	matches := make([]Matchup, 0, roundsCount*(n/groupSize+1))
	for r := 0; r < roundsCount; r++ {
		extraIdx := make(map[int]bool, extras)
		for k := 0; k < extras; k++ {
			extraIdx[(r*extras+k)%n] = true
		}

		active := make([]Player, 0, n-extras)
		extraPlayers := make([]Player, 0, extras)
		for i, p := range players {
			if extraIdx[i] {
				extraPlayers = append(extraPlayers, p)
			} else {
				active = append(active, p)
			}
		}

		variant := r % 3
		for i := 0; i+groupSize <= len(active); i += groupSize {
			matches = append(matches, pairGroup(r+1, variant, active[i:i+groupSize]))
		}

		if m, ok := extrasMatchup(r, extraPlayers); ok {
			matches = append(matches, m)
		}
	}
	return matches
}

// pairGroup picks one of the three ways to split [A,B,C,D] into two pairs.
func pairGroup(round, variant int, g []Player) Matchup {
	a, b, c, d := g[0], g[1], g[2], g[3]
	m := Matchup{Round: round, Type: MatchTypeDoubles}
	switch variant {
	case 0:
		m.Team1, m.Team2 = []Player{a, b}, []Player{c, d}
	case 1:
		m.Team1, m.Team2 = []Player{a, c}, []Player{b, d}
	default:
		m.Team1, m.Team2 = []Player{a, d}, []Player{b, c}
	}
	return m
}

func extrasMatchup(r int, extra []Player) (Matchup, bool) {
	round := r + 1
	switch len(extra) {
	case 1:
		return Matchup{Round: round, Team1: []Player{extra[0]}, Team2: []Player{}, Type: MatchTypeSitout}, true
	case 2:
		return Matchup{Round: round, Team1: []Player{extra[0]}, Team2: []Player{extra[1]}, Type: MatchTypeSingles}, true
	case 3:
		solo := r % 3
		partners := make([]Player, 0, 2)
		for i, p := range extra {
			if i != solo {
				partners = append(partners, p)
			}
		}
		return Matchup{Round: round, Team1: []Player{extra[solo]}, Team2: partners, Type: MatchTypeOneVTwo}, true
	default:
		return Matchup{}, false
	}
}

// Playable reports whether the matchup is an actual game. Sitouts are not.
func (m Matchup) Playable() bool {
	return m.Type != MatchTypeSitout && len(m.Team2) > 0
}

// Players returns every player in the matchup, team1 first.
func (m Matchup) Players() []Player {
	out := make([]Player, 0, len(m.Team1)+len(m.Team2))
	out = append(out, m.Team1...)
	return append(out, m.Team2...)
}

// GameID addresses a matchup by its round and its position in the flat plan.
func GameID(round, index int) string {
	return fmt.Sprintf("round-%d-%d", round, index)
}

// CourtCount is the number of parallel courts a roster of the given size can fill.
func CourtCount(players int) int {
	if players < 1 {
		return 0
	}
	return (players-1)/groupSize + 1
}
