package events

import (
	"fmt"

	"github.com/KhashayarRezaei/bookverse/internal/config"

	"github.com/rs/zerolog"
)

// NewPublisher builds the sink selected by cfg and wraps it in an AsyncPublisher.
func NewPublisher(cfg config.EventsConfig, logger zerolog.Logger) (*AsyncPublisher, error) {
	var sink Publisher

	switch cfg.Sink {
	case "", "log":
		sink = NewLogPublisher(logger)
	case "kafka":
		sink = NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	case "rabbitmq":
		p, err := NewRabbitPublisher(cfg.RabbitURL, cfg.RabbitExchange, logger)
		if err != nil {
			return nil, err
		}
		sink = p
	default:
		return nil, fmt.Errorf("unknown event sink: %s", cfg.Sink)
	}

	logger.Info().Str("sink", cfg.Sink).Int("buffer", cfg.BufferSize).Msg("event publisher configured")

	return NewAsyncPublisher(sink, cfg.BufferSize, cfg.PublishTimeout, logger), nil
}
