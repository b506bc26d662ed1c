package booking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	ctx := context.Background()
	players := []americano.Player{{UID: "u1", Name: "Anna"}, {UID: "u2", Name: "Bo"}}

	t.Run("booking stores and notifies", func(t *testing.T) {
		store, _, teardown := setupTestDB(t)
		defer teardown()
		n := notifier.NewMock()
		counters := metrics.NewStoreMock()
		svc := booking.NewService(store, n, counters)

		b, err := svc.Toggle(ctx, booking.ToggleRequest{Date: "2030-01-10", Hour: 18, Booked: true, Booker: "Anna", Players: players}, false)
		require.NoError(t, err)
		assert.True(t, b.Booked)

		bookings, err := store.ListFrom(ctx, "2030-01-10")
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, "Anna", bookings[0].UpdatedBy)

		require.Len(t, n.SendBookingNotificationCalls, 1)
		notice := n.SendBookingNotificationCalls[0]
		assert.Equal(t, "Anna", notice.Booker)
		assert.Equal(t, 18, notice.Hour)
		assert.Equal(t, players, notice.Players)

		all, _ := counters.GetAll(ctx)
		assert.Equal(t, 1, all[metrics.KeyCourtsBooked])
	})

	t.Run("unbooking deletes without notifying", func(t *testing.T) {
		store, _, teardown := setupTestDB(t)
		defer teardown()
		n := notifier.NewMock()
		svc := booking.NewService(store, n, metrics.NewStoreMock())

		_, err := svc.Toggle(ctx, booking.ToggleRequest{Date: "2030-01-10", Hour: 18, Booked: true, Booker: "Anna"}, false)
		require.NoError(t, err)
		n.Reset()

		_, err = svc.Toggle(ctx, booking.ToggleRequest{Date: "2030-01-10", Hour: 18, Booked: false, Booker: "Anna"}, false)
		require.NoError(t, err)

		bookings, err := store.ListFrom(ctx, "2030-01-10")
		require.NoError(t, err)
		assert.Empty(t, bookings)
		assert.Empty(t, n.SendBookingNotificationCalls)
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		store, _, teardown := setupTestDB(t)
		defer teardown()
		n := notifier.NewMock()
		svc := booking.NewService(store, n, metrics.NewStoreMock())

		_, err := svc.Toggle(ctx, booking.ToggleRequest{Date: "2030-01-10", Hour: 18, Booked: true, Booker: "Anna"}, true)
		require.NoError(t, err)

		bookings, err := store.ListFrom(ctx, "2030-01-10")
		require.NoError(t, err)
		assert.Empty(t, bookings)
		assert.Len(t, n.SendBookingNotificationCalls, 1)
	})

	t.Run("notification failure keeps the booking", func(t *testing.T) {
		store, _, teardown := setupTestDB(t)
		defer teardown()
		n := notifier.NewMock()
		n.SendBookingNotificationFunc = func(notifier.BookingNotice, bool) (string, error) {
			return "", errors.New("slack down")
		}
		svc := booking.NewService(store, n, metrics.NewStoreMock())

		_, err := svc.Toggle(ctx, booking.ToggleRequest{Date: "2030-01-10", Hour: 18, Booked: true, Booker: "Anna"}, false)
		require.NoError(t, err)

		bookings, err := store.ListFrom(ctx, "2030-01-10")
		require.NoError(t, err)
		assert.Len(t, bookings, 1)
	})

	t.Run("invalid request", func(t *testing.T) {
		store, _, teardown := setupTestDB(t)
		defer teardown()
		svc := booking.NewService(store, notifier.NewMock(), metrics.NewStoreMock())

		_, err := svc.Toggle(ctx, booking.ToggleRequest{Date: "2030-01-10", Hour: -1, Booked: true}, false)
		assert.ErrorIs(t, err, booking.ErrInvalidBooking)
	})
}
