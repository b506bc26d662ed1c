package americano

// HybridPoints awards the winner their score plus the margin of victory and the
// loser their raw score. A draw is reported as a team2 "win" with no margin.
func HybridPoints(scoreA, scoreB int) Points {
	winner, loser := scoreA, scoreB
	if scoreB > scoreA {
		winner, loser = scoreB, scoreA
	}
	margin := winner - loser
	winnerPoints := winner + margin

	if scoreA > scoreB {
		return Points{Team1Points: winnerPoints, Team2Points: loser, Team1Win: true}
	}
	return Points{Team1Points: loser, Team2Points: winnerPoints, Team1Win: false}
}
