package notifier

import (
	"sync"

	"github.com/mauv0809/courtside/internal/tournament"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendBookingNotificationCalls []BookingNotice
	SendScoreboardCalls          []struct {
		TournamentID string
		Stats        []tournament.Stat
		DryRun       bool
	}
	SendReadyToPlayCalls []struct {
		PlayerName string
		Date       string
	}

	// Spies
	SendBookingNotificationFunc func(notice BookingNotice, dryRun bool) (string, error)
	SendScoreboardFunc          func(tournamentID string, stats []tournament.Stat, dryRun bool) (string, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingNotificationCalls = nil
	m.SendScoreboardCalls = nil
	m.SendReadyToPlayCalls = nil
}

func (m *Mock) SendBookingNotification(notice BookingNotice, dryRun bool) (string, error) {
	m.mu.Lock()
	m.SendBookingNotificationCalls = append(m.SendBookingNotificationCalls, notice)
	fn := m.SendBookingNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(notice, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) SendScoreboard(tournamentID string, stats []tournament.Stat, dryRun bool) (string, error) {
	m.mu.Lock()
	m.SendScoreboardCalls = append(m.SendScoreboardCalls, struct {
		TournamentID string
		Stats        []tournament.Stat
		DryRun       bool
	}{tournamentID, stats, dryRun})
	fn := m.SendScoreboardFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(tournamentID, stats, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) SendReadyToPlay(playerName, date string, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendReadyToPlayCalls = append(m.SendReadyToPlayCalls, struct {
		PlayerName string
		Date       string
	}{playerName, date})
	return "mock-ts", nil
}
