package carttest

import (
	"context"
	"sync"

	"github.com/light-bringer/storefront-service/internal/messaging"
)

// Publisher records published envelopes.
type Publisher struct {
	mu     sync.Mutex
	Events []messaging.Envelope
	Err    error
}

func (p *Publisher) PublishEvent(_ context.Context, _ string, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	if env, ok := event.(messaging.Envelope); ok {
		p.Events = append(p.Events, env)
	}
	return nil
}

func (p *Publisher) Close() error { return nil }

// Types returns the published event types in order.
func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.Events))
	for i, e := range p.Events {
		out[i] = e.Type
	}
	return out
}
