package planner

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/tournament"
)

// ErrSlotNotFound is returned when no slot with enough players matches a tournament id.
var ErrSlotNotFound = errors.New("slot not found")

// MinPlayers is the smallest roster that makes a tournament slot.
const MinPlayers = 4

// SlotOption is one (date, hour) that has enough players for a tournament.
type SlotOption struct {
	TournamentID string             `json:"tournamentId"`
	Date         string             `json:"date"`
	Hour         int                `json:"hour"`
	SwitchIndex  int                `json:"switchIndex"`
	Label        string             `json:"label"`
	Players      []americano.Player `json:"players"`
	CourtCount   int                `json:"courtCount"`
	Booked       bool               `json:"booked"`
}

// Options groups slot options by whether any of their courts is booked.
type Options struct {
	Booked    []SlotOption `json:"booked"`
	NotBooked []SlotOption `json:"notBooked"`
}

// PlannedMatch is one entry of a round plan together with its game record.
// Sitouts have no game id and no game.
type PlannedMatch struct {
	americano.Matchup
	GameID string           `json:"gameId,omitempty"`
	Game   *tournament.Game `json:"game,omitempty"`
}

// Plan is the full round plan of a tournament.
type Plan struct {
	TournamentID string             `json:"tournamentId"`
	Players      []americano.Player `json:"players"`
	CourtCount   int                `json:"courtCount"`
	Matches      []PlannedMatch     `json:"matches"`
}

// Planner keeps the slot options up to date with availability and bookings.
type Planner struct {
	availability availability.Store
	bookings     booking.Store
	games        tournament.Store
	metrics      metrics.Metrics
	loc          *time.Location
	now          func() time.Time

	mu      sync.RWMutex
	slots   availability.Slots
	options Options
}
