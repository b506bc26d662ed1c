package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/availability"
)

// ListAvailabilityHandler lists rows from ?from= (default today) onwards.
func (s *Server) ListAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		if from == "" {
			from = time.Now().In(s.location()).Format("2006-01-02")
		}
		rows, err := s.Availability.ListFrom(r.Context(), from)
		if err != nil {
			writeError(w, err, "Failed to list availability")
			return
		}
		if rows == nil {
			rows = []availability.Row{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func (s *Server) AddAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var row availability.Row
		if err := decodeJSON(r, &row, false); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would add availability", "uid", row.UID, "date", row.Date)
			writeJSON(w, http.StatusOK, row)
			return
		}
		created, err := s.Availability.Add(r.Context(), row)
		if err != nil {
			writeError(w, err, "Failed to add availability")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var req updateAvailabilityRequest
		if err := decodeJSON(r, &req, false); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would update availability", "id", id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := s.Availability.Update(r.Context(), id, req.StartTime, req.EndTime); err != nil {
			writeError(w, err, "Failed to update availability")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) DeleteAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would delete availability", "id", id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := s.Availability.Delete(r.Context(), id); err != nil {
			writeError(w, err, "Failed to delete availability")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PingAvailabilityHandler tells the channel that the owner of a row is ready to play.
func (s *Server) PingAvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := s.Availability.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err, "Failed to get availability")
			return
		}
		if _, err := s.Notifier.SendReadyToPlay(row.Name, row.Date, isDryRunFromContext(r)); err != nil {
			writeError(w, err, "Failed to send ping")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) location() *time.Location {
	if s.Cfg.Location != nil {
		return s.Cfg.Location
	}
	return time.Local
}
