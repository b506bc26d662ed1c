package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/availability"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/changefeed"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/fines"
	server "github.com/mauv0809/courtside/internal/http"
	"github.com/mauv0809/courtside/internal/janitor"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier/slack"
	"github.com/mauv0809/courtside/internal/planner"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/tournament"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	counters := metrics.New(db)
	feed := changefeed.New()

	availStore := availability.New(db, feed)
	bookingStore := booking.NewStore(db, feed)
	games := tournament.New(db)
	fineStore := fines.New(db)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, cfg.Location, metricsSvc)

	// Without a GCP project games are finalized inline.
	var pubsubClient pubsub.PubSubClient
	if cfg.ProjectID != "" {
		pubsubClient, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer pubsubClient.Close()
	} else {
		log.Info("No GCP project configured, finalizing games inline")
	}
	proc := processor.New(games, notifier, metricsSvc, counters, pubsubClient)

	plan := planner.New(availStore, bookingStore, games, metricsSvc, cfg.Location)
	stopPlanner, err := plan.Start(context.Background(), feed)
	if err != nil {
		log.Fatalf("Failed to start planner: %s", err)
	}
	defer stopPlanner()

	stopJanitor, err := janitor.New(availStore, bookingStore, metricsSvc, cfg.Location).Start(janitor.DefaultInterval)
	if err != nil {
		log.Fatalf("Failed to start janitor: %s", err)
	}
	defer func() {
		if err := stopJanitor(); err != nil {
			log.Error("Janitor shutdown failed", "error", err)
		}
	}()

	s := server.NewServer(
		cfg,
		availStore,
		booking.NewService(bookingStore, notifier, counters),
		plan,
		games,
		fineStore,
		proc,
		notifier,
		metricsSvc,
		counters,
		metricsHandler,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port, "timezone", cfg.Location.String())
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
