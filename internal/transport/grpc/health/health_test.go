package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

func status(t *testing.T, s *grpchealth.Server, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.Status
}

func TestChecker_AllHealthy(t *testing.T) {
	server := grpchealth.NewServer()
	c := NewChecker(server, nil, nil)
	c.Register("redis", PingFunc(func(context.Context) error { return nil }))
	c.Register("spanner", PingFunc(func(context.Context) error { return nil }))

	assert.Empty(t, c.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, server, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, server, ServiceName))
}

func TestChecker_FailingDependency(t *testing.T) {
	server := grpchealth.NewServer()
	c := NewChecker(server, nil, nil)
	c.Register("redis", PingFunc(func(context.Context) error { return errors.New("connection refused") }))
	c.Register("spanner", PingFunc(func(context.Context) error { return nil }))

	assert.Equal(t, []string{"redis"}, c.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, server, ServiceName))
}

func TestChecker_Recovers(t *testing.T) {
	server := grpchealth.NewServer()
	c := NewChecker(server, nil, nil)
	var down = true
	c.Register("redis", PingFunc(func(context.Context) error {
		if down {
			return errors.New("down")
		}
		return nil
	}))

	c.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, server, ""))

	down = false
	c.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, server, ""))
}

func TestChecker_RunChecksOnClock(t *testing.T) {
	server := grpchealth.NewServer()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	c := NewChecker(server, clk, nil)
	var checks int32
	c.Register("redis", PingFunc(func(context.Context) error {
		atomic.AddInt32(&checks, 1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx, 15*time.Second)
	}()

	assert.Eventually(t, func() bool { return clk.Pending() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&checks), "first check runs immediately")

	clk.Advance(15 * time.Second)
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&checks) == 2 }, time.Second, time.Millisecond)

	cancel()
	<-done
}
