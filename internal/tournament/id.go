package tournament

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidID is returned when a tournament id cannot be parsed.
var ErrInvalidID = errors.New("invalid tournament id")

const (
	idSeparator = "__"
	dateLayout  = "2006-01-02"
)

// MakeID builds the tournament id for a court slot, e.g. "2025-09-25__18__0".
func MakeID(date string, hour, switchIndex int) string {
	return fmt.Sprintf("%s%s%02d%s%d", date, idSeparator, hour, idSeparator, switchIndex)
}

// ParseID splits a tournament id back into its date, hour and court switch index.
func ParseID(id string) (date string, hour, switchIndex int, err error) {
	parts := strings.Split(id, idSeparator)
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if _, err := time.Parse(dateLayout, parts[0]); err != nil {
		return "", 0, 0, fmt.Errorf("%w: date %q", ErrInvalidID, parts[0])
	}
	hour, err = strconv.Atoi(parts[1])
	if err != nil || hour < 0 || hour > 23 {
		return "", 0, 0, fmt.Errorf("%w: hour %q", ErrInvalidID, parts[1])
	}
	switchIndex, err = strconv.Atoi(parts[2])
	if err != nil || switchIndex < 0 {
		return "", 0, 0, fmt.Errorf("%w: switch index %q", ErrInvalidID, parts[2])
	}
	return parts[0], hour, switchIndex, nil
}
