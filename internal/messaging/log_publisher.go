package messaging

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to a logger. It stands in for a broker when
// none is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	attrs := []any{"topic", topic, "key", key}
	if env, ok := event.(Envelope); ok {
		attrs = append(attrs, "type", env.Type)
	}
	p.logger.InfoContext(ctx, "event", attrs...)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
