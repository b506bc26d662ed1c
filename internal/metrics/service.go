package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RoundsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_rounds_generated_total",
			Help: "The total number of round plans generated for a tournament slot.",
		}),
		PlannerRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_planner_recomputes_total",
			Help: "The total number of slot option recomputations.",
		}),
		GamesFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_games_finalized_total",
			Help: "The total number of games whose result was aggregated into the scoreboard.",
		}),
		FinalizeSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_finalize_skipped_total",
			Help: "The total number of finalize requests for games that were already aggregated.",
		}),
		FinalizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtside_finalize_duration_seconds",
			Help:    "The duration of finalizing a single game.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		RowsPurged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courtside_rows_purged_total",
			Help: "The total number of past rows removed by the janitor.",
		}, []string{"table"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RoundsGenerated,
		s.PlannerRecomputes,
		s.GamesFinalized,
		s.FinalizeSkipped,
		s.FinalizeDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.RowsPurged,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRoundsGenerated() {
	s.RoundsGenerated.Inc()
}

func (s *Service) IncPlannerRecomputes() {
	s.PlannerRecomputes.Inc()
}

func (s *Service) IncGamesFinalized() {
	s.GamesFinalized.Inc()
}

func (s *Service) IncFinalizeSkipped() {
	s.FinalizeSkipped.Inc()
}

func (s *Service) ObserveFinalizeDuration(duration float64) {
	s.FinalizeDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) AddRowsPurged(table string, n int64) {
	s.RowsPurged.WithLabelValues(table).Add(float64(n))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
