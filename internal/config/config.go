// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	HTTPPort        string
	GRPCPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
}

type CommerceConfig struct {
	BaseURL     string
	APIPrefix   string
	Timeout     time.Duration
	DedupWindow time.Duration
	RateLimit   float64
	RateBurst   int
}

type SpannerConfig struct {
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type FeedConfig struct {
	PageSize        int
	ThrottleWindow  time.Duration
	SessionIdleTTL  time.Duration
	SweepInterval   time.Duration
	ReconcileFanout int
}

type Config struct {
	Server   ServerConfig
	Commerce CommerceConfig
	Spanner  SpannerConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Feed     FeedConfig
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	var (
		cfg  Config
		err  error
		errs []error
	)
	collect := func(e error) {
		if e != nil {
			errs = append(errs, e)
		}
	}

	cfg.Server.HTTPPort = stringWithDefault("HTTP_PORT", "8080")
	cfg.Server.GRPCPort = stringWithDefault("GRPC_PORT", "9090")
	cfg.Server.LogLevel = stringWithDefault("LOG_LEVEL", "info")
	cfg.Server.RequestTimeout, err = durationWithDefault("REQUEST_TIMEOUT", 30*time.Second)
	collect(err)
	cfg.Server.ShutdownTimeout, err = durationWithDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	collect(err)

	cfg.Commerce.BaseURL, err = requiredString("COMMERCE_API_BASE_URL")
	collect(err)
	cfg.Commerce.APIPrefix = stringWithDefault("COMMERCE_API_PREFIX", "/api/v1")
	cfg.Commerce.Timeout, err = durationWithDefault("COMMERCE_API_TIMEOUT", 10*time.Second)
	collect(err)
	cfg.Commerce.DedupWindow, err = durationWithDefault("COMMERCE_API_DEDUP_WINDOW", 100*time.Millisecond)
	collect(err)
	cfg.Commerce.RateLimit, err = floatWithDefault("COMMERCE_API_RATE_LIMIT", 50)
	collect(err)
	cfg.Commerce.RateBurst, err = intWithDefault("COMMERCE_API_RATE_BURST", 20)
	collect(err)

	cfg.Spanner.Database = stringWithDefault("SPANNER_DATABASE",
		"projects/test-project/instances/dev-instance/databases/storefront-db")

	cfg.Redis.Addr = stringWithDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = stringWithDefault("REDIS_PASSWORD", "")
	cfg.Redis.DB, err = intWithDefault("REDIS_DB", 0)
	collect(err)
	cfg.Redis.CartTTL, err = durationWithDefault("REDIS_CART_TTL", 15*time.Minute)
	collect(err)

	cfg.Kafka.Brokers = splitList(stringWithDefault("KAFKA_BROKERS", ""))
	cfg.Kafka.Topic = stringWithDefault("KAFKA_TOPIC", "storefront.events")
	cfg.Kafka.GroupID = stringWithDefault("KAFKA_GROUP_ID", "storefront-events-tail")

	cfg.Feed.PageSize, err = intWithDefault("FEED_PAGE_SIZE", 12)
	collect(err)
	cfg.Feed.ThrottleWindow, err = durationWithDefault("FEED_THROTTLE", 500*time.Millisecond)
	collect(err)
	cfg.Feed.SessionIdleTTL, err = durationWithDefault("FEED_SESSION_TTL", 15*time.Minute)
	collect(err)
	cfg.Feed.SweepInterval, err = durationWithDefault("FEED_SWEEP_INTERVAL", time.Minute)
	collect(err)
	cfg.Feed.ReconcileFanout, err = intWithDefault("RECONCILE_CONCURRENCY", 8)
	collect(err)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
