// Package kafka implements messaging over Kafka with segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/light-bringer/storefront-service/internal/messaging"
)

// Broker publishes through one long-lived writer and consumes with a reader
// per call.
type Broker struct {
	brokers []string
	writer  *kafkaGo.Writer
	logger  *slog.Logger
}

// NewBroker creates a Kafka publisher and subscriber.
func NewBroker(brokers []string, logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		brokers: brokers,
		writer: &kafkaGo.Writer{
			Addr:         kafkaGo.TCP(brokers...),
			Balancer:     &kafkaGo.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafkaGo.RequireOne,
		},
		logger: logger,
	}
}

var (
	_ messaging.Publisher  = (*Broker)(nil)
	_ messaging.Subscriber = (*Broker)(nil)
)

// PublishEvent writes event as JSON. Keys hash to partitions so one cart's
// events stay ordered.
func (k *Broker) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return k.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

// Consume reads topic until ctx is done. Handler errors are logged and the
// message is skipped.
func (k *Broker) Consume(ctx context.Context, topic string, groupID string, handler func(ctx context.Context, payload []byte) error) {
	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers: k.brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				k.logger.Info("consumer shutting down", "topic", topic)
				return
			}
			k.logger.Error("error reading message", "topic", topic, "error", err)
			continue
		}

		if err := handler(ctx, msg.Value); err != nil {
			k.logger.Error("error handling message", "topic", topic, "offset", msg.Offset, "error", err)
		}
	}
}

// Close flushes and closes the writer.
func (k *Broker) Close() error {
	return k.writer.Close()
}
