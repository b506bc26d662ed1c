package metrics

import "context"

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncRoundsGenerated()
	IncPlannerRecomputes()
	IncGamesFinalized()
	IncFinalizeSkipped()
	ObserveFinalizeDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	AddRowsPurged(table string, n int64)
	SetStartupTime(duration float64)
}

// MetricsStore keeps lifetime counters that survive restarts.
type MetricsStore interface {
	Increment(ctx context.Context, key string)
	GetAll(ctx context.Context) (map[string]int, error)
}
