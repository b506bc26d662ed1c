package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/booking"
)

// ListSlotsHandler returns the current slot options split by booked state.
func (s *Server) ListSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("refresh") == "true" {
			if err := s.Planner.Refresh(r.Context()); err != nil {
				writeError(w, err, "Failed to refresh slots")
				return
			}
		}
		writeJSON(w, http.StatusOK, s.Planner.Options())
	}
}

func (s *Server) UpcomingSlotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opt, ok := s.Planner.Upcoming()
		if !ok {
			http.Error(w, "No upcoming slot", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, opt)
	}
}

// ToggleBookingHandler books or unbooks one court of a slot.
func (s *Server) ToggleBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req booking.ToggleRequest
		if err := decodeJSON(r, &req, false); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		b, err := s.Bookings.Toggle(r.Context(), req, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err, "Failed to toggle booking")
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}
