// Package health reports backing store reachability through the standard
// gRPC health service.
package health

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// ServiceName is the health service name of the storefront.
const ServiceName = "storefront.v1.Storefront"

const defaultProbeTimeout = 2 * time.Second

// Pinger is a dependency that can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Checker probes dependencies and publishes the result on a gRPC health
// server. The service is serving only while every dependency answers.
type Checker struct {
	server  *grpchealth.Server
	clock   clock.Clock
	logger  *slog.Logger
	timeout time.Duration

	mu   sync.Mutex
	deps map[string]Pinger
}

func NewChecker(server *grpchealth.Server, clk clock.Clock, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Checker{
		server:  server,
		clock:   clk,
		logger:  logger,
		timeout: defaultProbeTimeout,
		deps:    make(map[string]Pinger),
	}
}

// Register adds a named dependency.
func (c *Checker) Register(name string, p Pinger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deps[name] = p
}

// Check probes every dependency once, updates the health server and returns
// the names of the failing dependencies.
func (c *Checker) Check(ctx context.Context) []string {
	c.mu.Lock()
	names := make([]string, 0, len(c.deps))
	for name := range c.deps {
		names = append(names, name)
	}
	c.mu.Unlock()
	sort.Strings(names)

	var failing []string
	for _, name := range names {
		c.mu.Lock()
		p := c.deps[name]
		c.mu.Unlock()

		probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := p.Ping(probeCtx)
		cancel()
		if err != nil {
			c.logger.Warn("dependency unhealthy", "dependency", name, "error", err)
			failing = append(failing, name)
		}
	}

	status := healthpb.HealthCheckResponse_SERVING
	if len(failing) > 0 {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	return failing
}

// Run checks every interval until ctx is done.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	c.Check(ctx)
	clock.Tick(ctx, c.clock, interval, func() { c.Check(ctx) })
}

// Shutdown marks everything as not serving so load balancers drain first.
func (c *Checker) Shutdown() {
	c.server.Shutdown()
}
