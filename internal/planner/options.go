package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/tournament"
)

// BuildOptions turns per-hour rosters into tournament slot options.
//
// Every (date, hour) with at least MinPlayers players yields one option with
// switch index 0. The option is booked when any of its courts is booked.
// Both groups are sorted by date, then hour.
func BuildOptions(slots availability.Slots, bookings []booking.Booking, loc *time.Location) Options {
	booked := make(map[courtKey]bool, len(bookings))
	for _, b := range bookings {
		if b.Booked {
			booked[courtKey{b.Date, b.Hour, b.SwitchIndex}] = true
		}
	}

	var all []SlotOption
	for date, hours := range slots {
		for hour, players := range hours {
			if len(players) < MinPlayers {
				continue
			}
			courts := americano.CourtCount(len(players))
			opt := SlotOption{
				TournamentID: tournament.MakeID(date, hour, 0),
				Date:         date,
				Hour:         hour,
				Label:        label(date, hour, len(players), loc),
				Players:      append([]americano.Player(nil), players...),
				CourtCount:   courts,
			}
			for s := 0; s < courts; s++ {
				if booked[courtKey{date, hour, s}] {
					opt.Booked = true
					break
				}
			}
			all = append(all, opt)
		}
	}
	sortOptions(all)

	var out Options
	for _, opt := range all {
		if opt.Booked {
			out.Booked = append(out.Booked, opt)
		} else {
			out.NotBooked = append(out.NotBooked, opt)
		}
	}
	return out
}

// PickUpcoming returns the first option across both groups that starts at or
// after now, falling back to the earliest option when all lie in the past.
func PickUpcoming(options Options, now time.Time) (SlotOption, bool) {
	all := make([]SlotOption, 0, len(options.Booked)+len(options.NotBooked))
	all = append(all, options.NotBooked...)
	all = append(all, options.Booked...)
	if len(all) == 0 {
		return SlotOption{}, false
	}
	sortOptions(all)

	for _, opt := range all {
		start, err := time.ParseInLocation("2006-01-02", opt.Date, now.Location())
		if err != nil {
			continue
		}
		if !start.Add(time.Duration(opt.Hour) * time.Hour).Before(now) {
			return opt, true
		}
	}
	return all[0], true
}

type courtKey struct {
	date  string
	hour  int
	court int
}

func sortOptions(opts []SlotOption) {
	sort.SliceStable(opts, func(i, j int) bool {
		if opts[i].Date != opts[j].Date {
			return opts[i].Date < opts[j].Date
		}
		return opts[i].Hour < opts[j].Hour
	})
}

// label renders e.g. "Thu 25 Sep · 18:00 · 5 players".
func label(date string, hour, players int, loc *time.Location) string {
	day := date
	if t, err := time.ParseInLocation("2006-01-02", date, loc); err == nil {
		day = t.Format("Mon 02 Jan")
	}
	return fmt.Sprintf("%s · %02d:00 · %d players", day, hour, players)
}
