package state

import (
	"slices"
	"sync"
	"time"

	"github.com/five82/ducktail/internal/engine"
)

const subscriberBuffer = 16

// Snapshot represents the latest data available to readers.
type Snapshot struct {
	View                engine.Snapshot
	HasView             bool
	LastNotice          *engine.Notice
	LastUpdated         time.Time
	ConsecutiveFailures int // Number of consecutive failed polls
	Dropped             int64
}

// IsOffline returns true when the log has been unreadable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store keeps the latest engine event and fans events out to subscribers.
// The zero value is ready to use.
type Store struct {
	mu          sync.RWMutex
	snapshot    Snapshot
	subscribers map[int]chan engine.Event
	nextID      int
}

// Publish records ev and delivers it to every subscriber without blocking.
// A subscriber that has fallen behind loses its oldest queued event so the
// newest one always gets through.
func (s *Store) Publish(ev engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.View = ev.Snapshot
	s.snapshot.HasView = true
	s.snapshot.LastUpdated = time.Now()
	if ev.Notice != nil {
		n := *ev.Notice
		s.snapshot.LastNotice = &n
	}
	if ev.Polled {
		if ev.Snapshot.Status == engine.StatusFailed {
			s.snapshot.ConsecutiveFailures++
		} else {
			s.snapshot.ConsecutiveFailures = 0
		}
	}

	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
			continue
		default:
		}
		select {
		case <-ch:
			s.snapshot.Dropped++
		default:
		}
		select {
		case ch <- ev:
		default:
			s.snapshot.Dropped++
		}
	}
}

// Subscribe returns a channel of future events, primed with the current view
// when there is one, and a function that unsubscribes and closes it.
func (s *Store) Subscribe() (<-chan engine.Event, func()) {
	ch := make(chan engine.Event, subscriberBuffer)

	s.mu.Lock()
	if s.subscribers == nil {
		s.subscribers = make(map[int]chan engine.Event)
	}
	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch
	if s.snapshot.HasView {
		ch <- engine.Event{Snapshot: s.snapshot.View}
	}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.View.Entries = slices.Clone(s.snapshot.View.Entries)
	if s.snapshot.LastNotice != nil {
		n := *s.snapshot.LastNotice
		snap.LastNotice = &n
	}
	return snap
}
