package metrics

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	roundsGenerated   int
	plannerRecomputes int
	gamesFinalized    int
	finalizeSkipped   int
	finalizeDurations []float64
	slackNotifSent    int
	slackNotifFailed  int
	rowsPurged        map[string]int64
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		finalizeDurations: make([]float64, 0),
		rowsPurged:        make(map[string]int64),
	}
}

func (m *Mock) IncRoundsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsGenerated++
}

func (m *Mock) IncPlannerRecomputes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plannerRecomputes++
}

func (m *Mock) IncGamesFinalized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesFinalized++
}

func (m *Mock) IncFinalizeSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalizeSkipped++
}

func (m *Mock) ObserveFinalizeDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalizeDurations = append(m.finalizeDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) AddRowsPurged(table string, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rowsPurged[table] += n
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RoundsGenerated returns the number of times IncRoundsGenerated was called.
func (m *Mock) RoundsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsGenerated
}

// PlannerRecomputes returns the number of times IncPlannerRecomputes was called.
func (m *Mock) PlannerRecomputes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plannerRecomputes
}

// GamesFinalized returns the number of times IncGamesFinalized was called.
func (m *Mock) GamesFinalized() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesFinalized
}

// FinalizeSkipped returns the number of times IncFinalizeSkipped was called.
func (m *Mock) FinalizeSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finalizeSkipped
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// FinalizeDurations returns every duration passed to ObserveFinalizeDuration.
func (m *Mock) FinalizeDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.finalizeDurations...)
}

// RowsPurged returns the total passed to AddRowsPurged for table.
func (m *Mock) RowsPurged(table string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rowsPurged[table]
}

// StoreMock is an in-memory MetricsStore.
type StoreMock struct {
	mu     sync.Mutex
	values map[string]int
}

// NewStoreMock creates an empty StoreMock.
func NewStoreMock() *StoreMock {
	return &StoreMock{values: make(map[string]int)}
}

func (m *StoreMock) Increment(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
}

func (m *StoreMock) GetAll(_ context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}
