package booking

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/changefeed"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
)

// ErrInvalidBooking is returned for bookings with a malformed date, hour or court index.
var ErrInvalidBooking = errors.New("invalid booking")

// Booking marks one court of a slot as booked. A slot with several courts
// has one switch per court, numbered from 0.
type Booking struct {
	Date        string    `json:"date"`
	Hour        int       `json:"hour"`
	SwitchIndex int       `json:"switchIndex"`
	Booked      bool      `json:"booked"`
	UpdatedBy   string    `json:"updatedBy"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToggleRequest flips a court switch on or off.
type ToggleRequest struct {
	Date        string             `json:"date"`
	Hour        int                `json:"hour"`
	SwitchIndex int                `json:"switchIndex"`
	Booked      bool               `json:"booked"`
	Booker      string             `json:"booker"`
	Players     []americano.Player `json:"players"`
}

// store handles booking persistence.
type store struct {
	db   *sql.DB
	feed *changefeed.Feed
	mu   sync.RWMutex
}

// Service applies booking toggles and notifies the players of new bookings.
type Service struct {
	store    Store
	notifier notifier.Notifier
	counters metrics.MetricsStore
}
