package http

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/export"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/tournament"
)

// RoundsHandler generates the round plan of a tournament and creates its games.
func (s *Server) RoundsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, err := s.Planner.Rounds(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err, "Failed to generate rounds")
			return
		}
		writeJSON(w, http.StatusOK, plan)
	}
}

func (s *Server) SetScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, gameID := r.PathValue("id"), r.PathValue("gameID")
		var req scoreRequest
		if err := decodeJSON(r, &req, false); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Games.SetScore(r.Context(), id, gameID, req.Side, req.Value); err != nil {
			writeError(w, err, "Failed to set score")
			return
		}
		game, err := s.Games.GetGame(r.Context(), id, gameID)
		if err != nil {
			writeError(w, err, "Failed to get game")
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

// FinalizeGameHandler answers 202 when the finalize was queued and 200 when
// it ran inline.
func (s *Server) FinalizeGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, gameID := r.PathValue("id"), r.PathValue("gameID")
		var req finalizeRequest
		if err := decodeJSON(r, &req, true); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		outcome, err := s.Processor.FinalizeGame(r.Context(), id, gameID, req.RequestedBy, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err, "Failed to finalize game")
			return
		}
		resp := finalizeResponse{TournamentID: id, GameID: gameID, Outcome: outcome}
		if outcome == processor.OutcomeQueued {
			writeJSON(w, http.StatusAccepted, resp)
			return
		}
		if game, err := s.Games.GetGame(r.Context(), id, gameID); err == nil {
			resp.Game = game
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) ScoreboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Games.Scoreboard(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err, "Failed to get scoreboard")
			return
		}
		if stats == nil {
			stats = []tournament.Stat{}
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// ScoreboardExportHandler serves the scoreboard and games as a workbook.
func (s *Server) ScoreboardExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, _, _, err := tournament.ParseID(id); err != nil {
			writeError(w, err, "Invalid tournament id")
			return
		}
		stats, err := s.Games.Scoreboard(r.Context(), id)
		if err != nil {
			writeError(w, err, "Failed to get scoreboard")
			return
		}
		games, err := s.Games.ListGames(r.Context(), id)
		if err != nil {
			writeError(w, err, "Failed to list games")
			return
		}

		f, err := export.Scoreboard(id, stats, games)
		if err != nil {
			writeError(w, err, "Failed to build workbook")
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="scoreboard-%s.xlsx"`, id))
		if err := f.Write(w); err != nil {
			log.Error("Failed to write workbook", "error", err, "tournamentID", id)
		}
	}
}

func (s *Server) NotifyScoreboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.Processor.NotifyScoreboard(r.Context(), id, isDryRunFromContext(r)); err != nil {
			writeError(w, err, "Failed to notify scoreboard")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearTournamentHandler removes every game and stat of a tournament.
func (s *Server) ClearTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would clear tournament", "tournamentID", id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := s.Games.Clear(r.Context(), id); err != nil {
			writeError(w, err, "Failed to clear tournament")
			return
		}
		log.Info("Tournament cleared", "tournamentID", id)
		w.WriteHeader(http.StatusNoContent)
	}
}
