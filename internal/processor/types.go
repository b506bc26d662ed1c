package processor

import (
	"errors"

	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
)

// Processor finalizes games, either inline or through a Pub/Sub round trip.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	counters metrics.MetricsStore
}

// Outcome describes what a finalize request did.
type Outcome string

const (
	OutcomeQueued     Outcome = "queued"
	OutcomeAggregated Outcome = "aggregated"
	OutcomeSkipped    Outcome = "already-aggregated"
	OutcomeDryRun     Outcome = "dry-run"
)

// ErrInvalidEvent is returned for pubsub payloads that cannot be decoded.
var ErrInvalidEvent = errors.New("invalid event")
