package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
)

// NewService creates a booking Service.
func NewService(store Store, notifier notifier.Notifier, metrics metrics.MetricsStore) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		counters: metrics,
	}
}

// Toggle books or unbooks a court. Booking a court notifies the players of
// the slot; a failed notification is logged and does not undo the booking.
func (s *Service) Toggle(ctx context.Context, req ToggleRequest, dryRun bool) (Booking, error) {
	b := Booking{
		Date:        req.Date,
		Hour:        req.Hour,
		SwitchIndex: req.SwitchIndex,
		Booked:      req.Booked,
		UpdatedBy:   req.Booker,
		UpdatedAt:   time.Now(),
	}
	if err := validate(b.Date, b.Hour, b.SwitchIndex); err != nil {
		return Booking{}, err
	}

	if dryRun {
		log.Info("[Dry Run] Would toggle booking", "date", b.Date, "hour", b.Hour, "switch", b.SwitchIndex, "booked", b.Booked)
	} else if b.Booked {
		if err := s.store.Set(ctx, b); err != nil {
			return Booking{}, fmt.Errorf("failed to book court: %w", err)
		}
		s.counters.Increment(ctx, metrics.KeyCourtsBooked)
	} else {
		if err := s.store.Delete(ctx, b.Date, b.Hour, b.SwitchIndex); err != nil {
			return Booking{}, fmt.Errorf("failed to unbook court: %w", err)
		}
	}

	if b.Booked {
		notice := notifier.BookingNotice{
			Booker:      req.Booker,
			Date:        req.Date,
			Hour:        req.Hour,
			SwitchIndex: req.SwitchIndex,
			Players:     req.Players,
		}
		if _, err := s.notifier.SendBookingNotification(notice, dryRun); err != nil {
			log.Error("Failed to send booking notification", "error", err, "date", b.Date, "hour", b.Hour)
		}
	}
	return b, nil
}
