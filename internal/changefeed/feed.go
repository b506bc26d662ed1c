package changefeed

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Topic names the data set that changed.
type Topic string

const (
	TopicAvailability Topic = "availability"
	TopicBookings     Topic = "bookings"
)

// Feed fans change notifications out to subscribers. Subscribers are called
// synchronously on the publishing goroutine and must not publish themselves.
type Feed struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Topic)
}

// New creates an empty Feed.
func New() *Feed {
	return &Feed{subs: make(map[int]func(Topic))}
}

// Subscribe registers fn and returns a function that removes it again.
func (f *Feed) Subscribe(fn func(Topic)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// Publish notifies every subscriber that topic changed. A nil Feed is a no-op.
func (f *Feed) Publish(topic Topic) {
	if f == nil {
		return
	}
	f.mu.RLock()
	subs := make([]func(Topic), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.RUnlock()

	log.Debug("Publishing change", "topic", topic, "subscribers", len(subs))
	for _, fn := range subs {
		fn(topic)
	}
}
