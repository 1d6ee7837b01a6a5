package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/five82/ducktail/internal/logtail"
)

const (
	// DefaultInterval is the poll cadence when none is configured.
	DefaultInterval = 5 * time.Second

	defaultIOTimeout = 30 * time.Second
	commandBuffer    = 64
)

// NoticeKind classifies a user-facing notification.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// MarshalText encodes the kind by name.
func (k NoticeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Notice is a transient message for the user.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	At      time.Time  `json:"at"`
}

// Event is published after every change to the engine.
type Event struct {
	Snapshot Snapshot `json:"snapshot"`
	Notice   *Notice  `json:"notice,omitempty"`
	// Polled marks events produced by a completed fetch.
	Polled bool `json:"-"`
}

// Publisher receives events from the loop goroutine.
type Publisher interface {
	Publish(Event)
}

// Options configure a Loop.
type Options struct {
	Resource  Resource
	Publisher Publisher
	Interval  time.Duration
	Debounce  time.Duration
	IOTimeout time.Duration
}

// Loop owns an Engine and drives it from a single goroutine: poll ticks,
// fetch results, debounced filter input and control actions are all
// serialised through it.
type Loop struct {
	engine    *Engine
	res       Resource
	pub       Publisher
	interval  time.Duration
	ioTimeout time.Duration
	debounce  *Debouncer
	cmds      chan func()
	done      chan struct{}

	// owned by the loop goroutine
	ctx       context.Context
	filterSeq uint64
}

// NewLoop builds a loop around a fresh engine. Nothing runs until Run.
func NewLoop(opts Options) *Loop {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ioTimeout := opts.IOTimeout
	if ioTimeout <= 0 {
		ioTimeout = defaultIOTimeout
	}
	return &Loop{
		engine:    New(),
		res:       opts.Resource,
		pub:       opts.Publisher,
		interval:  interval,
		ioTimeout: ioTimeout,
		debounce:  NewDebouncer(opts.Debounce),
		cmds:      make(chan func(), commandBuffer),
		done:      make(chan struct{}),
		ctx:       context.Background(),
	}
}

// Interval returns the poll cadence.
func (l *Loop) Interval() time.Duration { return l.interval }

// Run polls immediately and then every interval until ctx is cancelled.
// Cancellation stops the ticker and any pending debounced filter.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.debounce.Stop()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.ctx = ctx
	l.publish(nil, false)
	l.tick()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.tick()
		case fn := <-l.cmds:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) tick() {
	ticket, ok := l.engine.BeginPoll()
	if !ok {
		return
	}
	ctx := l.ctx
	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, l.ioTimeout)
		defer cancel()
		content, err := l.res.ReadAll(fetchCtx)
		l.post(func() {
			if err != nil && !errors.Is(err, logtail.ErrNotFound) && ctx.Err() == nil {
				log.Printf("log poll failed: %v", err)
			}
			l.engine.FinishPoll(ticket, content, err)
			l.publish(nil, true)
		})
	}()
}

// InputFilter records filter input. Only the latest term is applied, once
// input has been quiet for the debounce delay.
func (l *Loop) InputFilter(term string) {
	l.post(func() {
		l.filterSeq++
		seq := l.filterSeq
		l.debounce.Trigger(func() {
			l.post(func() {
				if seq != l.filterSeq {
					return
				}
				l.engine.ApplyFilter(term)
				l.publish(nil, false)
			})
		})
	})
}

// ClearFilter drops any pending input and restores the unfiltered view
// immediately.
func (l *Loop) ClearFilter() {
	l.post(func() {
		l.filterSeq++
		l.debounce.Stop()
		l.engine.ClearFilter()
		l.publish(nil, false)
	})
}

// TogglePause flips polling on or off and returns whether it is now paused.
func (l *Loop) TogglePause() bool {
	var paused bool
	l.call(func() {
		paused = l.engine.TogglePause()
		l.publish(nil, false)
	})
	return paused
}

// SetPaused turns polling off or on without waiting for the loop. The new
// state arrives with the next published event.
func (l *Loop) SetPaused(paused bool) {
	l.post(func() {
		l.engine.SetPaused(paused)
		l.publish(nil, false)
	})
}

// ClearLog empties the log. On success the view resets to the missing-file
// placeholder; on failure the view is left alone. Either way a notice is
// published.
func (l *Loop) ClearLog() {
	l.post(func() {
		ctx := l.ctx
		go func() {
			writeCtx, cancel := context.WithTimeout(ctx, l.ioTimeout)
			defer cancel()
			err := l.res.WriteAll(writeCtx, "")
			l.post(func() {
				if err != nil {
					log.Printf("clear log failed: %v", err)
					l.publish(&Notice{
						Kind:    NoticeError,
						Message: fmt.Sprintf("Failed to clear log file: %v", err),
						At:      time.Now(),
					}, false)
					return
				}
				l.engine.LogCleared()
				l.publish(&Notice{Kind: NoticeSuccess, Message: "Log file has been cleared.", At: time.Now()}, false)
			})
		}()
	})
}

// Snapshot returns the engine state as seen by the loop goroutine.
func (l *Loop) Snapshot() Snapshot {
	var snap Snapshot
	l.call(func() { snap = l.engine.Snapshot() })
	return snap
}

func (l *Loop) publish(n *Notice, polled bool) {
	if l.pub == nil {
		return
	}
	l.pub.Publish(Event{Snapshot: l.engine.Snapshot(), Notice: n, Polled: polled})
}

// post queues fn for the loop goroutine. It reports false once the loop has
// stopped.
func (l *Loop) post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.cmds <- fn:
		return true
	case <-l.done:
		return false
	}
}

// call runs fn on the loop goroutine and waits for it.
func (l *Loop) call(fn func()) bool {
	finished := make(chan struct{})
	if !l.post(func() { fn(); close(finished) }) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}
