package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster(n int) []americano.Player {
	players := make([]americano.Player, n)
	for i := range players {
		players[i] = americano.Player{UID: fmt.Sprintf("u%d", i), Name: fmt.Sprintf("P%d", i)}
	}
	return players
}

func TestBuildOptions(t *testing.T) {
	slots := availability.Slots{
		"2030-01-11": {
			18: roster(4),
			19: roster(3),
		},
		"2030-01-10": {
			20: roster(9),
			17: roster(5),
		},
	}

	t.Run("needs four players", func(t *testing.T) {
		opts := BuildOptions(slots, nil, time.UTC)
		assert.Empty(t, opts.Booked)
		require.Len(t, opts.NotBooked, 3)

		assert.Equal(t, "2030-01-10__17__0", opts.NotBooked[0].TournamentID)
		assert.Equal(t, "2030-01-10__20__0", opts.NotBooked[1].TournamentID)
		assert.Equal(t, "2030-01-11__18__0", opts.NotBooked[2].TournamentID)

		assert.Equal(t, 2, opts.NotBooked[0].CourtCount)
		assert.Equal(t, 3, opts.NotBooked[1].CourtCount)
		assert.Equal(t, 1, opts.NotBooked[2].CourtCount)
		assert.Equal(t, "Thu 10 Jan · 17:00 · 5 players", opts.NotBooked[0].Label)
		assert.Len(t, opts.NotBooked[1].Players, 9)
	})

	t.Run("any booked court books the slot", func(t *testing.T) {
		opts := BuildOptions(slots, []booking.Booking{
			{Date: "2030-01-10", Hour: 20, SwitchIndex: 2, Booked: true},
		}, time.UTC)
		require.Len(t, opts.Booked, 1)
		assert.Equal(t, "2030-01-10__20__0", opts.Booked[0].TournamentID)
		assert.True(t, opts.Booked[0].Booked)
		assert.Len(t, opts.NotBooked, 2)
	})

	t.Run("bookings beyond the court count are ignored", func(t *testing.T) {
		opts := BuildOptions(slots, []booking.Booking{
			{Date: "2030-01-11", Hour: 18, SwitchIndex: 1, Booked: true},
			{Date: "2030-01-11", Hour: 19, SwitchIndex: 0, Booked: true},
		}, time.UTC)
		assert.Empty(t, opts.Booked)
		assert.Len(t, opts.NotBooked, 3)
	})
}

func TestPickUpcoming(t *testing.T) {
	opts := Options{
		NotBooked: []SlotOption{
			{TournamentID: "a", Date: "2030-01-10", Hour: 17},
			{TournamentID: "c", Date: "2030-01-11", Hour: 18},
		},
		Booked: []SlotOption{
			{TournamentID: "b", Date: "2030-01-10", Hour: 20},
		},
	}

	t.Run("first slot not yet started", func(t *testing.T) {
		got, ok := PickUpcoming(opts, time.Date(2030, 1, 10, 18, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, "b", got.TournamentID)
	})

	t.Run("slot starting now counts", func(t *testing.T) {
		got, ok := PickUpcoming(opts, time.Date(2030, 1, 10, 17, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, "a", got.TournamentID)
	})

	t.Run("falls back to earliest", func(t *testing.T) {
		got, ok := PickUpcoming(opts, time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, "a", got.TournamentID)
	})

	t.Run("no options", func(t *testing.T) {
		_, ok := PickUpcoming(Options{}, time.Now())
		assert.False(t, ok)
	})
}
