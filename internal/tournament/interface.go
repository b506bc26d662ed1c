package tournament

import (
	"context"

	"github.com/mauv0809/courtside/internal/americano"
)

// Store defines the persistence operations for tournament games and stats.
type Store interface {
	// EnsureGame stores the matchup of a game. Teams of an existing game follow
	// the matchup until the game is finalized; scores are kept.
	EnsureGame(ctx context.Context, tournamentID, gameID string, m americano.Matchup) error
	SetScore(ctx context.Context, tournamentID, gameID string, side Side, value int) error
	GetGame(ctx context.Context, tournamentID, gameID string) (*Game, error)
	ListGames(ctx context.Context, tournamentID string) ([]Game, error)
	// Finalize locks the game and aggregates its result into the stats at most once.
	Finalize(ctx context.Context, tournamentID, gameID string) (FinalizeResult, error)
	Scoreboard(ctx context.Context, tournamentID string) ([]Stat, error)
	Clear(ctx context.Context, tournamentID string) error
}
