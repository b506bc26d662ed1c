package tournament

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/americano"
)

var (
	// ErrGameNotFound is returned when no game exists for the tournament and game id.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameFinalized is returned when a score is written to a finalized game.
	ErrGameFinalized = errors.New("game already finalized")
	// ErrInvalidScore is returned for negative scores or an unknown side.
	ErrInvalidScore = errors.New("invalid score")
)

// Side selects which team a score belongs to.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Game is the persisted record of one playable matchup.
type Game struct {
	TournamentID string              `json:"tournamentId"`
	ID           string              `json:"id"`
	Round        int                 `json:"round"`
	Type         americano.MatchType `json:"type"`
	Team1        []americano.Player  `json:"team1"`
	Team2        []americano.Player  `json:"team2"`
	ScoreLeft    *int                `json:"scoreLeft"`
	ScoreRight   *int                `json:"scoreRight"`
	Finalized    bool                `json:"finalized"`
	Aggregated   bool                `json:"aggregated"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// Stat is a player's running total within a tournament.
type Stat struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	GamesPlayed int    `json:"gamesPlayed"`
	GamesWon    int    `json:"gamesWon"`
	GamesLost   int    `json:"gamesLost"`
	TotalPoints int    `json:"totalPoints"`
}

// FinalizeResult reports what a Finalize call did.
type FinalizeResult struct {
	TournamentID      string           `json:"tournamentId"`
	GameID            string           `json:"gameId"`
	AlreadyAggregated bool             `json:"alreadyAggregated"`
	Points            americano.Points `json:"points"`
}

// store handles games and tournament stats.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
