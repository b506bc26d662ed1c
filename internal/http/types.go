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

type Server struct {
	Cfg            config.Config
	Availability   availability.Store
	Bookings       *booking.Service
	Planner        *planner.Planner
	Games          tournament.Store
	Fines          fines.Store
	Processor      *processor.Processor
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Router         *http.ServeMux
}

type updateAvailabilityRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type scoreRequest struct {
	Side  tournament.Side `json:"side"`
	Value int             `json:"value"`
}

type finalizeRequest struct {
	RequestedBy string `json:"requestedBy"`
}

type finalizeResponse struct {
	TournamentID string            `json:"tournamentId"`
	GameID       string            `json:"gameId"`
	Outcome      processor.Outcome `json:"outcome"`
	Game         *tournament.Game  `json:"game,omitempty"`
}

type assignFineRequest struct {
	UserName   string `json:"userName"`
	FineID     string `json:"fineId"`
	Multiplier int    `json:"multiplier"`
}

type paidRequest struct {
	Paid bool `json:"paid"`
}
