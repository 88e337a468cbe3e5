package events

import (
	"context"

	"github.com/rs/zerolog"
)

// LogPublisher writes events to the application log. It is the default sink.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a log-backed publisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With().Str("component", "events").Logger()}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", string(event.Type)).
		Str("order_id", event.OrderID.String()).
		Int64("user_id", event.UserID).
		Interface("payload", event.Payload).
		Msg("event published")
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error {
	return nil
}
