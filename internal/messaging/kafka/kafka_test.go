package kafka

import (
	"context"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishRejectsUnencodableEvent(t *testing.T) {
	b := NewBroker([]string{"localhost:9092"}, nil)
	t.Cleanup(func() { _ = b.Close() })

	err := b.PublishEvent(context.Background(), "storefront.events", "k", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal event")
}

func TestBroker_WriterConfig(t *testing.T) {
	b := NewBroker([]string{"a:9092", "b:9092"}, nil)
	t.Cleanup(func() { _ = b.Close() })

	assert.Equal(t, []string{"a:9092", "b:9092"}, b.brokers)
	assert.IsType(t, &kafkaGo.Hash{}, b.writer.Balancer)
	assert.Empty(t, b.writer.Topic, "topic is set per message")
}
