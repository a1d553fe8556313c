package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// ErrSessionNotFound is returned for unknown or evicted browse sessions.
var ErrSessionNotFound = errors.New("browse session not found")

// DefaultIdleTTL is how long an untouched browse session lives.
const DefaultIdleTTL = 15 * time.Minute

type session struct {
	feed     *Feed
	lastSeen time.Time
}

// Registry holds one Feed per browse session and evicts idle ones.
type Registry struct {
	catalog contracts.Catalog
	opts    Options
	ttl     time.Duration
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewRegistry creates a registry whose feeds share opts.
func NewRegistry(catalog contracts.Catalog, opts Options, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Registry{
		catalog:  catalog,
		opts:     opts,
		ttl:      ttl,
		clock:    opts.Clock,
		logger:   opts.Logger,
		sessions: make(map[string]*session),
	}
}

// Create starts a new feed for the filter and returns its session id.
func (r *Registry) Create(filter domain.Filter) (string, *Feed) {
	id := uuid.NewString()
	f := New(r.catalog, r.opts)

	r.mu.Lock()
	r.sessions[id] = &session{feed: f, lastSeen: r.clock.Now()}
	r.mu.Unlock()

	f.Start(filter)
	return id, f
}

// Get returns the feed for id and marks the session as used.
func (r *Registry) Get(id string) (*Feed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = r.clock.Now()
	return s.feed, nil
}

// Delete closes and forgets the session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.feed.Close()
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were evicted.
func (r *Registry) Sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	var idle []*session
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.feed.Close()
	}
	if len(idle) > 0 {
		r.logger.Info("evicted idle browse sessions", "count", len(idle))
	}
	return len(idle)
}

// CloseAll closes every session. Used at session end and on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*session)
	r.mu.Unlock()

	for _, s := range all {
		s.feed.Close()
	}
}

// Run sweeps every interval, measured on the registry clock, until ctx is
// done, then closes all sessions.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl / 2
	}
	clock.Tick(ctx, r.clock, interval, r.Sweep)
	r.CloseAll()
}
