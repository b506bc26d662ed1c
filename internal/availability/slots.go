package availability

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/americano"
)

// GroupByHour buckets availability rows into per-date, per-hour rosters.
//
// A row covers the whole hours [start, end) of its date; minutes are ignored.
// Rows missing a date or time, or with a non-numeric hour, are skipped. Each
// player appears at most once per hour, in order of first appearance.
func GroupByHour(rows []Row) Slots {
	slots := make(Slots)
	for _, row := range rows {
		if row.Date == "" || row.StartTime == "" || row.EndTime == "" {
			continue
		}
		start, ok := leadingHour(row.StartTime)
		if !ok {
			log.Debug("Skipping availability with malformed start time", "id", row.ID, "startTime", row.StartTime)
			continue
		}
		end, ok := leadingHour(row.EndTime)
		if !ok {
			log.Debug("Skipping availability with malformed end time", "id", row.ID, "endTime", row.EndTime)
			continue
		}

		for h := start; h < end; h++ {
			hours, ok := slots[row.Date]
			if !ok {
				hours = make(map[int][]americano.Player)
				slots[row.Date] = hours
			}
			if containsUID(hours[h], row.UID) {
				continue
			}
			hours[h] = append(hours[h], americano.Player{UID: row.UID, Name: row.Name})
		}
	}
	return slots
}

// Roster returns the players available for the given date and hour.
func (s Slots) Roster(date string, hour int) []americano.Player {
	return s[date][hour]
}

// leadingHour parses the "HH" part of "HH:mm".
func leadingHour(t string) (int, bool) {
	hh, _, _ := strings.Cut(t, ":")
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, false
	}
	return h, true
}

func containsUID(players []americano.Player, uid string) bool {
	for _, p := range players {
		if p.UID == uid {
			return true
		}
	}
	return false
}
