package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/changefeed"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/tournament"
)

const refreshTimeout = 10 * time.Second

// New creates a Planner. Call Start to load the initial options and follow changes.
func New(avail availability.Store, bookings booking.Store, games tournament.Store, metrics metrics.Metrics, loc *time.Location) *Planner {
	if loc == nil {
		loc = time.Local
	}
	return &Planner{
		availability: avail,
		bookings:     bookings,
		games:        games,
		metrics:      metrics,
		loc:          loc,
		now:          time.Now,
		slots:        make(availability.Slots),
	}
}

// Start computes the options once and recomputes them on every availability
// or booking change. The returned function stops following the feed.
func (p *Planner) Start(ctx context.Context, feed *changefeed.Feed) (func(), error) {
	if err := p.Refresh(ctx); err != nil {
		return nil, err
	}
	unsubscribe := feed.Subscribe(func(topic changefeed.Topic) {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := p.Refresh(ctx); err != nil {
			log.Error("Failed to recompute slot options", "error", err, "topic", topic)
		}
	})
	return unsubscribe, nil
}

// Refresh recomputes all slot options from today onwards.
func (p *Planner) Refresh(ctx context.Context) error {
	today := p.now().In(p.loc).Format("2006-01-02")

	rows, err := p.availability.ListFrom(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to load availability: %w", err)
	}
	bookings, err := p.bookings.ListFrom(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	slots := availability.GroupByHour(rows)
	options := BuildOptions(slots, bookings, p.loc)

	p.mu.Lock()
	p.slots = slots
	p.options = options
	p.mu.Unlock()

	p.metrics.IncPlannerRecomputes()
	log.Debug("Slot options recomputed", "booked", len(options.Booked), "notBooked", len(options.NotBooked))
	return nil
}

// Options returns the last computed slot options.
func (p *Planner) Options() Options {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.options
}

// Upcoming returns the next slot option to start.
func (p *Planner) Upcoming() (SlotOption, bool) {
	return PickUpcoming(p.Options(), p.now().In(p.loc))
}

// Roster returns the players of the slot a tournament belongs to.
func (p *Planner) Roster(tournamentID string) ([]americano.Player, error) {
	date, hour, _, err := tournament.ParseID(tournamentID)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	players := p.slots.Roster(date, hour)
	p.mu.RUnlock()

	if len(players) < MinPlayers {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, tournamentID)
	}
	return append([]americano.Player(nil), players...), nil
}

// Rounds generates the round plan for a tournament and makes sure every
// playable matchup has a game record. Unfinalized games take the current
// teams and keep their scores.
func (p *Planner) Rounds(ctx context.Context, tournamentID string) (*Plan, error) {
	players, err := p.Roster(tournamentID)
	if err != nil {
		return nil, err
	}

	matchups := americano.GenerateRounds(players)
	p.metrics.IncRoundsGenerated()

	plan := &Plan{
		TournamentID: tournamentID,
		Players:      players,
		CourtCount:   americano.CourtCount(len(players)),
		Matches:      make([]PlannedMatch, 0, len(matchups)),
	}
	for i, m := range matchups {
		pm := PlannedMatch{Matchup: m}
		if m.Playable() {
			pm.GameID = americano.GameID(m.Round, i)
			if err := p.games.EnsureGame(ctx, tournamentID, pm.GameID, m); err != nil {
				return nil, fmt.Errorf("failed to ensure game %s: %w", pm.GameID, err)
			}
		}
		plan.Matches = append(plan.Matches, pm)
	}

	games, err := p.games.ListGames(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	byID := make(map[string]*tournament.Game, len(games))
	for i := range games {
		byID[games[i].ID] = &games[i]
	}
	for i := range plan.Matches {
		if id := plan.Matches[i].GameID; id != "" {
			plan.Matches[i].Game = byID[id]
		}
	}

	log.Info("Round plan ready", "tournamentID", tournamentID, "players", len(players), "matches", len(plan.Matches))
	return plan, nil
}
