package notifier

import (
	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/tournament"
)

// BookingNotice describes a court that has just been booked.
type BookingNotice struct {
	Booker      string
	Date        string
	Hour        int
	SwitchIndex int
	Players     []americano.Player
}

// Notifier defines a high-level interface for sending notifications about club events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendBookingNotification tells the players of a slot that a court was booked.
	SendBookingNotification(notice BookingNotice, dryRun bool) (string, error)
	// SendScoreboard posts the current standings of a tournament.
	SendScoreboard(tournamentID string, stats []tournament.Stat, dryRun bool) (string, error)
	// SendReadyToPlay announces that a player is ready to play on a date.
	SendReadyToPlay(playerName, date string, dryRun bool) (string, error)
}
