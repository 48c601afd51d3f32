package session

import (
	"context"
	"errors"
	"sync"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/dispatch"
	"github.com/BrandonKowalski/osk/pkg/osk/internal/logging"
	"go.uber.org/atomic"
)

// ErrSourceClosed is returned by Next once a source has been closed and drained.
var ErrSourceClosed = errors.New("input source closed")

type EventKind int

const (
	EventButton EventKind = iota
	EventKey
)

type Event struct {
	Kind   EventKind
	Button constants.VirtualButton
	Key    dispatch.KeyEvent
}

func ButtonEvent(b constants.VirtualButton) Event {
	return Event{Kind: EventButton, Button: b}
}

func KeyEvent(k dispatch.KeyEvent) Event {
	return Event{Kind: EventKey, Key: k}
}

// InputSource feeds the input loop. Next blocks until an event is available.
type InputSource interface {
	Next(ctx context.Context) (Event, error)
}

// ChanSource is an InputSource fed by Push from any goroutine.
type ChanSource struct {
	events    chan Event
	closed    chan struct{}
	closeOnce sync.Once
	dropped   *atomic.Int64
}

func NewChanSource(capacity int) *ChanSource {
	if capacity <= 0 {
		capacity = 64
	}
	return &ChanSource{
		events:  make(chan Event, capacity),
		closed:  make(chan struct{}),
		dropped: atomic.NewInt64(0),
	}
}

// Push queues an event without blocking. It reports false when the queue is
// full or the source is closed.
func (c *ChanSource) Push(ev Event) bool {
	select {
	case <-c.closed:
		return false
	default:
	}

	select {
	case c.events <- ev:
		return true
	default:
		n := c.dropped.Inc()
		logging.For("session").Warn("Input queue full, dropping event", "dropped", n)
		return false
	}
}

func (c *ChanSource) Next(ctx context.Context) (Event, error) {
	select {
	case ev := <-c.events:
		return ev, nil
	case <-c.closed:
		return Event{}, ErrSourceClosed
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

func (c *ChanSource) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

func (c *ChanSource) Dropped() int64 {
	return c.dropped.Load()
}

// Poster runs functions on a designated execution context.
type Poster interface {
	Post(fn func())
}

// QueuePoster collects posted functions until the owning loop drains them.
type QueuePoster struct {
	mu      sync.Mutex
	pending []func()
}

func NewQueuePoster() *QueuePoster {
	return &QueuePoster{}
}

func (q *QueuePoster) Post(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain runs every pending function on the calling goroutine and returns how many ran.
func (q *QueuePoster) Drain() int {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// GoPoster runs each posted function on its own goroutine.
type GoPoster struct{}

func (GoPoster) Post(fn func()) {
	go fn()
}
