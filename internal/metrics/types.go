package metrics

import (
	"database/sql"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Persistent counter keys.
const (
	KeyGamesFinalized = "games_finalized"
	KeyCourtsBooked   = "courts_booked"
	KeyFinesAssigned  = "fines_assigned"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	RoundsGenerated    prometheus.Counter
	PlannerRecomputes  prometheus.Counter
	GamesFinalized     prometheus.Counter
	FinalizeSkipped    prometheus.Counter
	FinalizeDuration   prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	RowsPurged         *prometheus.CounterVec
	StartupTimeSeconds prometheus.Gauge
}

// store handles metric-related database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}
