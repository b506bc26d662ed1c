package processor

import (
	"context"

	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/tournament"
)

// Store defines the tournament operations required by the processor.
type Store interface {
	Finalize(ctx context.Context, tournamentID, gameID string) (tournament.FinalizeResult, error)
	Scoreboard(ctx context.Context, tournamentID string) ([]tournament.Stat, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
