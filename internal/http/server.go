package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/fines"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/planner"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/tournament"
)

func NewServer(
	cfg config.Config,
	avail availability.Store,
	bookings *booking.Service,
	plan *planner.Planner,
	games tournament.Store,
	fineStore fines.Store,
	processor *processor.Processor,
	notifier notifier.Notifier,
	metricsSvc metrics.Metrics,
	counters metrics.MetricsStore,
	metricsHandler http.Handler,
) *Server {
	server := &Server{
		Cfg:            cfg,
		Availability:   avail,
		Bookings:       bookings,
		Planner:        plan,
		Games:          games,
		Fines:          fineStore,
		Processor:      processor,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(s.StatsHandler(), paramsMiddleware))

	s.Router.Handle("GET /availability", Chain(s.ListAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("POST /availability", Chain(s.AddAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("PUT /availability/{id}", Chain(s.UpdateAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /availability/{id}", Chain(s.DeleteAvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("POST /availability/{id}/ping", Chain(s.PingAvailabilityHandler(), paramsMiddleware))

	s.Router.Handle("GET /slots", Chain(s.ListSlotsHandler(), paramsMiddleware))
	s.Router.Handle("GET /slots/upcoming", Chain(s.UpcomingSlotHandler(), paramsMiddleware))
	s.Router.Handle("POST /bookings", Chain(s.ToggleBookingHandler(), paramsMiddleware))

	s.Router.Handle("GET /tournaments/{id}/rounds", Chain(s.RoundsHandler(), paramsMiddleware))
	s.Router.Handle("POST /tournaments/{id}/games/{gameID}/score", Chain(s.SetScoreHandler(), paramsMiddleware))
	s.Router.Handle("POST /tournaments/{id}/games/{gameID}/finalize", Chain(s.FinalizeGameHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/{id}/scoreboard", Chain(s.ScoreboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/{id}/scoreboard.xlsx", Chain(s.ScoreboardExportHandler(), paramsMiddleware))
	s.Router.Handle("POST /tournaments/{id}/scoreboard/notify", Chain(s.NotifyScoreboardHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /tournaments/{id}", Chain(s.ClearTournamentHandler(), paramsMiddleware))

	s.Router.Handle("GET /fines", Chain(s.ListFinesHandler(), paramsMiddleware))
	s.Router.Handle("POST /fines", Chain(s.CreateFineHandler(), paramsMiddleware))
	s.Router.Handle("PUT /fines/{id}", Chain(s.UpdateFineHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /fines/{id}", Chain(s.DeleteFineHandler(), paramsMiddleware))
	s.Router.Handle("GET /fines/totals", Chain(s.FineTotalsHandler(), paramsMiddleware))
	s.Router.Handle("GET /users/{uid}/fines", Chain(s.ListUserFinesHandler(), paramsMiddleware))
	s.Router.Handle("POST /users/{uid}/fines", Chain(s.AssignFineHandler(), paramsMiddleware))
	s.Router.Handle("POST /users/{uid}/fines/{id}/paid", Chain(s.MarkFinePaidHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /users/{uid}/fines/{id}", Chain(s.RemoveUserFineHandler(), paramsMiddleware))

	s.Router.Handle("POST /pubsub/finalize-game", Chain(s.FinalizeGameEventHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
