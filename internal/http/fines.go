package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/fines"
	"github.com/mauv0809/courtside/internal/metrics"
)

func (s *Server) ListFinesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.Fines.ListFines(r.Context())
		if err != nil {
			writeError(w, err, "Failed to list fines")
			return
		}
		if list == nil {
			list = []fines.Fine{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) CreateFineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f fines.Fine
		if err := decodeJSON(r, &f, false); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		created, err := s.Fines.CreateFine(r.Context(), f)
		if err != nil {
			writeError(w, err, "Failed to create fine")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateFineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f fines.Fine
		if err := decodeJSON(r, &f, false); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		f.ID = r.PathValue("id")
		if err := s.Fines.UpdateFine(r.Context(), f); err != nil {
			writeError(w, err, "Failed to update fine")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) DeleteFineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Fines.DeleteFine(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err, "Failed to delete fine")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) FineTotalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := s.Fines.Totals(r.Context())
		if err != nil {
			writeError(w, err, "Failed to get fine totals")
			return
		}
		if totals == nil {
			totals = []fines.Total{}
		}
		writeJSON(w, http.StatusOK, totals)
	}
}

func (s *Server) ListUserFinesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.Fines.ListUserFines(r.Context(), r.PathValue("uid"))
		if err != nil {
			writeError(w, err, "Failed to list user fines")
			return
		}
		if list == nil {
			list = []fines.UserFine{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) AssignFineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignFineRequest
		if err := decodeJSON(r, &req, false); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Multiplier == 0 {
			req.Multiplier = 1
		}
		uf, err := s.Fines.Assign(r.Context(), r.PathValue("uid"), req.UserName, req.FineID, req.Multiplier)
		if err != nil {
			writeError(w, err, "Failed to assign fine")
			return
		}
		s.Counters.Increment(r.Context(), metrics.KeyFinesAssigned)
		writeJSON(w, http.StatusCreated, uf)
	}
}

func (s *Server) MarkFinePaidHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := paidRequest{Paid: true}
		if err := decodeJSON(r, &req, true); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Fines.MarkPaid(r.Context(), r.PathValue("uid"), r.PathValue("id"), req.Paid); err != nil {
			writeError(w, err, "Failed to update fine payment")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) RemoveUserFineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Fines.RemoveUserFine(r.Context(), r.PathValue("uid"), r.PathValue("id")); err != nil {
			writeError(w, err, "Failed to remove fine")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
