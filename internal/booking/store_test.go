package booking_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/changefeed"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary SQLite database for testing.
func setupTestDB(t *testing.T) (booking.Store, *changefeed.Feed, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)

	feed := changefeed.New()
	return booking.NewStore(db, feed), feed, teardown
}

func TestSetListDelete(t *testing.T) {
	store, feed, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	var topics []changefeed.Topic
	feed.Subscribe(func(topic changefeed.Topic) { topics = append(topics, topic) })

	require.NoError(t, store.Set(ctx, booking.Booking{Date: "2030-01-10", Hour: 18, SwitchIndex: 1, UpdatedBy: "u1"}))
	require.NoError(t, store.Set(ctx, booking.Booking{Date: "2030-01-10", Hour: 18, SwitchIndex: 0, UpdatedBy: "u2"}))
	// Booking the same court twice updates it.
	require.NoError(t, store.Set(ctx, booking.Booking{Date: "2030-01-10", Hour: 18, SwitchIndex: 0, UpdatedBy: "u3"}))

	bookings, err := store.ListFrom(ctx, "2030-01-01")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, 0, bookings[0].SwitchIndex)
	assert.Equal(t, "u3", bookings[0].UpdatedBy)
	assert.True(t, bookings[0].Booked)
	assert.Equal(t, 1, bookings[1].SwitchIndex)

	require.NoError(t, store.Delete(ctx, "2030-01-10", 18, 0))
	bookings, err = store.ListFrom(ctx, "2030-01-01")
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	// Deleting a missing booking is silent.
	require.NoError(t, store.Delete(ctx, "2030-01-10", 18, 0))

	assert.Equal(t, []changefeed.Topic{
		changefeed.TopicBookings,
		changefeed.TopicBookings,
		changefeed.TopicBookings,
		changefeed.TopicBookings,
	}, topics)
}

func TestSetRejectsInvalidBookings(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	for name, b := range map[string]booking.Booking{
		"bad date":       {Date: "tomorrow", Hour: 18},
		"hour too large": {Date: "2030-01-10", Hour: 24},
		"negative court": {Date: "2030-01-10", Hour: 18, SwitchIndex: -1},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, store.Set(ctx, b), booking.ErrInvalidBooking)
		})
	}
}

func TestPurgeBefore(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	for _, b := range []booking.Booking{
		{Date: "2030-01-09", Hour: 20},
		{Date: "2030-01-10", Hour: 17},
		{Date: "2030-01-10", Hour: 18},
		{Date: "2030-01-10", Hour: 19},
		{Date: "2030-01-11", Hour: 8},
	} {
		require.NoError(t, store.Set(ctx, b))
	}

	t.Run("on the hour keeps the starting slot", func(t *testing.T) {
		n, err := store.PurgeBefore(ctx, time.Date(2030, 1, 10, 18, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("past the hour drops the started slot", func(t *testing.T) {
		n, err := store.PurgeBefore(ctx, time.Date(2030, 1, 10, 18, 30, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	bookings, err := store.ListFrom(ctx, "")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, 19, bookings[0].Hour)
	assert.Equal(t, "2030-01-11", bookings[1].Date)
}
