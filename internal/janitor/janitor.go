package janitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/metrics"
)

// DefaultInterval is how often past availability and bookings are purged.
const DefaultInterval = time.Hour

// Janitor removes availability and bookings that lie in the past.
type Janitor struct {
	availability availability.Store
	bookings     booking.Store
	metrics      metrics.Metrics
	loc          *time.Location
	now          func() time.Time
}

// New creates a Janitor that evaluates "today" in loc.
func New(avail availability.Store, bookings booking.Store, metrics metrics.Metrics, loc *time.Location) *Janitor {
	if loc == nil {
		loc = time.Local
	}
	return &Janitor{
		availability: avail,
		bookings:     bookings,
		metrics:      metrics,
		loc:          loc,
		now:          time.Now,
	}
}

// Sweep purges availability dated before today and bookings that started before now.
func (j *Janitor) Sweep(ctx context.Context) error {
	now := j.now().In(j.loc)
	today := now.Format("2006-01-02")

	var errs []error
	n, err := j.availability.PurgeBefore(ctx, today)
	if err != nil {
		errs = append(errs, fmt.Errorf("availability: %w", err))
	} else {
		j.metrics.AddRowsPurged("availability", n)
	}

	m, err := j.bookings.PurgeBefore(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("bookings: %w", err))
	} else {
		j.metrics.AddRowsPurged("bookings", m)
	}

	log.Debug("Janitor sweep finished", "availability", n, "bookings", m)
	return errors.Join(errs...)
}

// Start runs Sweep immediately and then every interval until the returned
// stop function is called.
func (j *Janitor) Start(interval time.Duration) (func() error, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	sched, err := gocron.NewScheduler(gocron.WithLocation(j.loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := j.Sweep(ctx); err != nil {
				log.Error("Janitor sweep failed", "error", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("janitor"),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule janitor: %w", err)
	}

	sched.Start()
	log.Info("Janitor started", "interval", interval)
	return sched.Shutdown, nil
}
