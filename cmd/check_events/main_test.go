package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/messaging"
)

type stubSubscriber struct {
	payloads [][]byte
}

func (s *stubSubscriber) Consume(ctx context.Context, _ string, _ string, handler func(ctx context.Context, payload []byte) error) {
	for _, p := range s.payloads {
		if ctx.Err() != nil {
			return
		}
		_ = handler(ctx, p)
	}
}

func envelope(t *testing.T, typ, id string) []byte {
	t.Helper()
	b, err := json.Marshal(messaging.Envelope{
		Type:        typ,
		AggregateID: id,
		OccurredAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Data:        map[string]string{"id": id},
	})
	require.NoError(t, err)
	return b
}

func TestTail_FiltersByType(t *testing.T) {
	var out bytes.Buffer
	sub := &stubSubscriber{payloads: [][]byte{
		envelope(t, "cart.item_added", "c1"),
		envelope(t, "order.placed", "c1"),
		[]byte("not json"),
	}}
	p := &printer{out: &out, eventType: "order.placed"}

	tail(context.Background(), sub, "t", "g", p)

	assert.Equal(t, 1, p.count)
	assert.Contains(t, out.String(), "order.placed")
	assert.NotContains(t, out.String(), "cart.item_added")
}

func TestTail_StopsAtLimit(t *testing.T) {
	var out bytes.Buffer
	sub := &stubSubscriber{payloads: [][]byte{
		envelope(t, "a", "1"),
		envelope(t, "b", "2"),
		envelope(t, "c", "3"),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := &printer{out: &out, limit: 2, done: cancel}

	tail(ctx, sub, "t", "g", p)

	assert.Equal(t, 2, p.count)
	assert.Error(t, ctx.Err())
	assert.Contains(t, out.String(), `{"id":"2"}`)
}

func TestPrinter_RejectsMalformedPayload(t *testing.T) {
	p := &printer{out: &bytes.Buffer{}}
	assert.Error(t, p.handle(context.Background(), []byte("{")))
}
