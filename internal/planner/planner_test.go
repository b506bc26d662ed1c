package planner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/changefeed"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	planner  *Planner
	avail    availability.Store
	bookings booking.Store
	games    tournament.Store
	metrics  *metrics.Mock
	stop     func()
}

// setupPlanner wires a planner to real stores on a temporary database.
func setupPlanner(t *testing.T) (*fixture, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)

	feed := changefeed.New()
	f := &fixture{
		avail:    availability.New(db, feed),
		bookings: booking.NewStore(db, feed),
		games:    tournament.New(db),
		metrics:  metrics.NewMock(),
	}
	f.planner = New(f.avail, f.bookings, f.games, f.metrics, time.UTC)
	f.planner.now = func() time.Time { return time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC) }

	f.stop, err = f.planner.Start(context.Background(), feed)
	require.NoError(t, err)

	return f, func() {
		f.stop()
		teardown()
	}
}

func (f *fixture) addPlayers(t *testing.T, date, from, to string, players []americano.Player) {
	t.Helper()
	for _, p := range players {
		_, err := f.avail.Add(context.Background(), availability.Row{UID: p.UID, Name: p.Name, Date: date, StartTime: from, EndTime: to})
		require.NoError(t, err)
	}
}

func TestPlannerRecomputesOnChange(t *testing.T) {
	f, teardown := setupPlanner(t)
	defer teardown()
	ctx := context.Background()

	assert.Empty(t, f.planner.Options().NotBooked)

	f.addPlayers(t, "2030-01-10", "18:00", "20:00", roster(4))
	opts := f.planner.Options()
	require.Len(t, opts.NotBooked, 2)
	assert.Equal(t, "2030-01-10__18__0", opts.NotBooked[0].TournamentID)
	assert.Equal(t, "2030-01-10__19__0", opts.NotBooked[1].TournamentID)

	require.NoError(t, f.bookings.Set(ctx, booking.Booking{Date: "2030-01-10", Hour: 19, UpdatedBy: "u0"}))
	opts = f.planner.Options()
	require.Len(t, opts.Booked, 1)
	assert.Equal(t, 19, opts.Booked[0].Hour)
	require.Len(t, opts.NotBooked, 1)

	up, ok := f.planner.Upcoming()
	require.True(t, ok)
	assert.Equal(t, 18, up.Hour)

	// Past dates are not offered.
	f.addPlayers(t, "2030-01-09", "18:00", "19:00", roster(4))
	assert.Len(t, f.planner.Options().NotBooked, 1)

	assert.GreaterOrEqual(t, f.metrics.PlannerRecomputes(), 6)
}

func TestPlannerRoster(t *testing.T) {
	f, teardown := setupPlanner(t)
	defer teardown()

	f.addPlayers(t, "2030-01-10", "18:00", "19:00", roster(5))

	players, err := f.planner.Roster("2030-01-10__18__0")
	require.NoError(t, err)
	assert.Equal(t, roster(5), players)

	_, err = f.planner.Roster("2030-01-10__19__0")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = f.planner.Roster("garbage")
	assert.ErrorIs(t, err, tournament.ErrInvalidID)
}

func TestPlannerRounds(t *testing.T) {
	f, teardown := setupPlanner(t)
	defer teardown()
	ctx := context.Background()
	const id = "2030-01-10__18__0"

	f.addPlayers(t, "2030-01-10", "18:00", "19:00", roster(5))

	plan, err := f.planner.Rounds(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.CourtCount)
	// Five rounds of one doubles game and one sitout.
	require.Len(t, plan.Matches, 10)
	assert.Equal(t, 1, f.metrics.RoundsGenerated())

	for i, m := range plan.Matches {
		if m.Type == americano.MatchTypeSitout {
			assert.Empty(t, m.GameID)
			assert.Nil(t, m.Game)
			continue
		}
		assert.Equal(t, americano.GameID(m.Round, i), m.GameID)
		require.NotNil(t, m.Game)
		assert.Equal(t, m.Team1, m.Game.Team1)
	}

	games, err := f.games.ListGames(ctx, id)
	require.NoError(t, err)
	assert.Len(t, games, 5)

	// Scores survive a regenerated plan.
	require.NoError(t, f.games.SetScore(ctx, id, "round-1-0", tournament.SideLeft, 21))
	plan, err = f.planner.Rounds(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, plan.Matches[0].Game.ScoreLeft)
	assert.Equal(t, 21, *plan.Matches[0].Game.ScoreLeft)

	games, err = f.games.ListGames(ctx, id)
	require.NoError(t, err)
	assert.Len(t, games, 5)
}

func TestPlannerRoundsFollowRosterChanges(t *testing.T) {
	f, teardown := setupPlanner(t)
	defer teardown()
	ctx := context.Background()
	const id = "2030-01-10__18__0"

	f.addPlayers(t, "2030-01-10", "18:00", "19:00", roster(4))
	plan, err := f.planner.Rounds(ctx, id)
	require.NoError(t, err)
	require.Len(t, plan.Matches, 3)
	require.NoError(t, f.games.SetScore(ctx, id, "round-1-0", tournament.SideLeft, 21))

	f.addPlayers(t, "2030-01-10", "18:00", "19:00", []americano.Player{{UID: "late", Name: "Late"}})
	plan, err = f.planner.Rounds(ctx, id)
	require.NoError(t, err)
	require.Len(t, plan.Matches, 10)

	for _, m := range plan.Matches {
		if !m.Playable() {
			continue
		}
		require.NotNil(t, m.Game, "game %s", m.GameID)
		assert.Equal(t, m.Team1, m.Game.Team1, "game %s", m.GameID)
		assert.Equal(t, m.Team2, m.Game.Team2, "game %s", m.GameID)
	}

	first := plan.Matches[0]
	assert.Equal(t, "round-1-0", first.GameID)
	require.NotNil(t, first.Game.ScoreLeft)
	assert.Equal(t, 21, *first.Game.ScoreLeft)

	// Finalizing credits the players the plan shows.
	_, err = f.games.Finalize(ctx, id, first.GameID)
	require.NoError(t, err)
	board, err := f.games.Scoreboard(ctx, id)
	require.NoError(t, err)
	credited := make([]string, 0, len(board))
	for _, st := range board {
		credited = append(credited, st.PlayerID)
	}
	var shown []string
	for _, p := range first.Players() {
		shown = append(shown, p.UID)
	}
	assert.ElementsMatch(t, shown, credited)
}
