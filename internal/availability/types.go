package availability

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/changefeed"
)

// ErrInvalidRow is returned when an availability row has a malformed date or time range.
var ErrInvalidRow = errors.New("invalid availability row")

// ErrNotFound is returned when no availability row has the requested id.
var ErrNotFound = errors.New("availability not found")

// Row is a single window in which a player is available on a given date.
// StartTime and EndTime are "HH:mm"; only the hour is used for slotting.
type Row struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
}

// Slots maps date -> hour -> players available for that whole hour.
type Slots map[string]map[int][]americano.Player

// store handles availability persistence.
type store struct {
	db   *sql.DB
	feed *changefeed.Feed
	mu   sync.RWMutex
}
