package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrQueueFull is returned when the dispatch queue has no free slot.
	ErrQueueFull = errors.New("event queue is full")

	// ErrClosed is returned by Publish after Close.
	ErrClosed = errors.New("event publisher is closed")
)

// AsyncPublisher hands events to a sink from a single background worker.
// Publish never blocks on the sink.
type AsyncPublisher struct {
	sink    Publisher
	queue   chan Event
	timeout time.Duration
	logger  zerolog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewAsyncPublisher starts a worker delivering to sink. Each delivery is
// bounded by timeout.
func NewAsyncPublisher(sink Publisher, bufferSize int, timeout time.Duration, logger zerolog.Logger) *AsyncPublisher {
	if bufferSize < 1 {
		bufferSize = 1
	}

	p := &AsyncPublisher{
		sink:    sink,
		queue:   make(chan Event, bufferSize),
		timeout: timeout,
		logger:  logger.With().Str("component", "event-dispatcher").Logger(),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish enqueues event for delivery.
func (p *AsyncPublisher) Publish(_ context.Context, event Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events, delivers everything already queued and closes the sink.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.sink.Close()
}

func (p *AsyncPublisher) run() {
	defer close(p.done)

	for event := range p.queue {
		p.deliver(event)
	}
}

func (p *AsyncPublisher) deliver(event Event) {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.sink.Publish(ctx, event); err != nil {
		p.logger.Error().
			Err(err).
			Str("event_id", event.ID.String()).
			Str("event_type", string(event.Type)).
			Str("order_id", event.OrderID.String()).
			Msg("failed to deliver event")
	}
}
