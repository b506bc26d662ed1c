package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/pubsub"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler returns the persistent counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := s.Counters.GetAll(r.Context())
		if err != nil {
			writeError(w, err, "Failed to get stats")
			return
		}
		writeJSON(w, http.StatusOK, counts)
	}
}

// FinalizeGameEventHandler is the push endpoint of the finalize-game subscription.
// A non-2xx answer makes Pub/Sub redeliver the message.
func (s *Server) FinalizeGameEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received finalize game message", "body", string(bodyBytes))

		// Message.Data is base64 in the JSON and decoded into raw msgpack bytes.
		var push pubsub.PushRequest
		if err := json.Unmarshal(bodyBytes, &push); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if len(push.Message.Data) == 0 {
			http.Error(w, "Empty message", http.StatusBadRequest)
			return
		}
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would finalize game from event", "messageID", push.Message.MessageID)
			w.Write([]byte("OK"))
			return
		}

		if err := s.Processor.HandleFinalizeEvent(r.Context(), push.Message.Data); err != nil {
			writeError(w, err, "Failed to handle finalize event")
			return
		}
		w.Write([]byte("OK"))
	}
}
