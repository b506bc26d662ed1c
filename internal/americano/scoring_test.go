package americano

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHybridPoints(t *testing.T) {
	tests := []struct {
		name     string
		scoreA   int
		scoreB   int
		expected Points
	}{
		{"team1 wins by six", 21, 15, Points{Team1Points: 27, Team2Points: 15, Team1Win: true}},
		{"team2 wins by eleven", 10, 21, Points{Team1Points: 10, Team2Points: 32, Team1Win: false}},
		{"shutout", 21, 0, Points{Team1Points: 42, Team2Points: 0, Team1Win: true}},
		{"draw has no margin", 15, 15, Points{Team1Points: 15, Team2Points: 15, Team1Win: false}},
		{"unplayed", 0, 0, Points{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HybridPoints(tt.scoreA, tt.scoreB))
		})
	}
}
