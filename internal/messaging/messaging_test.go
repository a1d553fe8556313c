package messaging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testEvent struct {
	ID   string
	Kind string
}

func (e *testEvent) EventType() string   { return e.Kind }
func (e *testEvent) AggregateID() string { return e.ID }

type recordingPublisher struct {
	keys []string
	envs []Envelope
	fail map[string]bool
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _ string, key string, event any) error {
	env := event.(Envelope)
	if p.fail[env.Type] {
		return errors.New("broker down")
	}
	p.keys = append(p.keys, key)
	p.envs = append(p.envs, env)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestPublishAll(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pub := &recordingPublisher{fail: map[string]bool{"cart.bad": true}}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	events := []*testEvent{
		{ID: "c1", Kind: "cart.item_added"},
		{ID: "c1", Kind: "cart.bad"},
		{ID: "c1", Kind: "cart.cleared"},
	}
	PublishAll(context.Background(), pub, DefaultTopic, logger, at, events)

	assert.Equal(t, []string{"c1", "c1"}, pub.keys)
	assert.Equal(t, "cart.cleared", pub.envs[1].Type)
	assert.Equal(t, at, pub.envs[0].OccurredAt)
	assert.Contains(t, buf.String(), "failed to publish event")
}

func TestPublishAll_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		PublishAll(context.Background(), nil, DefaultTopic, nil, time.Now(), []*testEvent{{ID: "x"}})
	})
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))

	err := p.PublishEvent(context.Background(), "t", "k", Wrap(&testEvent{ID: "k", Kind: "cart.cleared"}, time.Now()))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "type=cart.cleared")
	assert.NoError(t, p.Close())
}
