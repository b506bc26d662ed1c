package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/fines"
	"github.com/mauv0809/courtside/internal/planner"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/tournament"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, availability.ErrInvalidRow),
		errors.Is(err, booking.ErrInvalidBooking),
		errors.Is(err, tournament.ErrInvalidID),
		errors.Is(err, tournament.ErrInvalidScore),
		errors.Is(err, fines.ErrInvalidFine),
		errors.Is(err, fines.ErrInvalidMultiplier),
		errors.Is(err, processor.ErrInvalidEvent):
		return http.StatusBadRequest
	case errors.Is(err, availability.ErrNotFound),
		errors.Is(err, tournament.ErrGameNotFound),
		errors.Is(err, planner.ErrSlotNotFound),
		errors.Is(err, fines.ErrFineNotFound):
		return http.StatusNotFound
	case errors.Is(err, tournament.ErrGameFinalized),
		errors.Is(err, fines.ErrFineExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its status. Internal errors are not echoed.
func writeError(w http.ResponseWriter, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	log.Warn(msg, "error", err, "status", status)
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// decodeJSON reads the request body into v. An empty body leaves v untouched
// when allowEmpty is set.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
