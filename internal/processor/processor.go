package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/tournament"
)

// New creates a new Processor. With a nil pubsub client games are finalized inline.
func New(store Store, notifier Notifier, m metrics.Metrics, counters metrics.MetricsStore, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  m,
		counters: counters,
	}
}

// FinalizeGame requests finalization of a game. When a pubsub client is
// configured the request is published and handled by HandleFinalizeEvent.
func (p *Processor) FinalizeGame(ctx context.Context, tournamentID, gameID, requestedBy string, dryRun bool) (Outcome, error) {
	if _, _, _, err := tournament.ParseID(tournamentID); err != nil {
		return "", err
	}
	if gameID == "" {
		return "", tournament.ErrGameNotFound
	}
	if dryRun {
		log.Info("Dry run: skipping finalize", "tournamentID", tournamentID, "gameID", gameID)
		return OutcomeDryRun, nil
	}

	if p.pubsub != nil {
		event := pubsub.FinalizeGameEvent{TournamentID: tournamentID, GameID: gameID, RequestedBy: requestedBy}
		if err := p.pubsub.SendMessage(pubsub.EventFinalizeGame, event); err != nil {
			return "", fmt.Errorf("failed to queue finalize of %s: %w", gameID, err)
		}
		log.Info("Finalize queued", "tournamentID", tournamentID, "gameID", gameID)
		return OutcomeQueued, nil
	}

	res, err := p.finalize(ctx, tournamentID, gameID)
	if err != nil {
		return "", err
	}
	if res.AlreadyAggregated {
		return OutcomeSkipped, nil
	}
	return OutcomeAggregated, nil
}

// HandleFinalizeEvent decodes a finalize-game event and applies it.
// Redelivered events are harmless since aggregation happens at most once.
func (p *Processor) HandleFinalizeEvent(ctx context.Context, data []byte) error {
	var event pubsub.FinalizeGameEvent
	if err := p.decode(data, &event); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	log.Info("Handling finalize event", "tournamentID", event.TournamentID, "gameID", event.GameID, "requestedBy", event.RequestedBy)

	_, err := p.finalize(ctx, event.TournamentID, event.GameID)
	if errors.Is(err, tournament.ErrGameNotFound) {
		// Nothing to retry.
		log.Warn("Dropping finalize event for unknown game", "tournamentID", event.TournamentID, "gameID", event.GameID)
		return nil
	}
	return err
}

// NotifyScoreboard posts the current scoreboard of a tournament.
func (p *Processor) NotifyScoreboard(ctx context.Context, tournamentID string, dryRun bool) error {
	stats, err := p.store.Scoreboard(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to load scoreboard: %w", err)
	}
	if _, err := p.notifier.SendScoreboard(tournamentID, stats, dryRun); err != nil {
		return fmt.Errorf("failed to send scoreboard: %w", err)
	}
	return nil
}

func (p *Processor) finalize(ctx context.Context, tournamentID, gameID string) (tournament.FinalizeResult, error) {
	startTime := time.Now()
	res, err := p.store.Finalize(ctx, tournamentID, gameID)
	p.metrics.ObserveFinalizeDuration(float64(time.Since(startTime).Milliseconds()))
	if err != nil {
		log.Error("Failed to finalize game", "error", err, "tournamentID", tournamentID, "gameID", gameID)
		return res, err
	}

	if res.AlreadyAggregated {
		p.metrics.IncFinalizeSkipped()
		log.Info("Game already aggregated", "tournamentID", tournamentID, "gameID", gameID)
		return res, nil
	}
	p.metrics.IncGamesFinalized()
	p.counters.Increment(ctx, metrics.KeyGamesFinalized)
	log.Info("Game finalized", "tournamentID", tournamentID, "gameID", gameID,
		"team1Points", res.Points.Team1Points, "team2Points", res.Points.Team2Points, "team1Win", res.Points.Team1Win)
	return res, nil
}

func (p *Processor) decode(data []byte, v any) error {
	if p.pubsub != nil {
		return p.pubsub.ProcessMessage(data, v)
	}
	return pubsub.Decode(data, v)
}
