package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/light-bringer/storefront-service/internal/messaging"
	"github.com/light-bringer/storefront-service/internal/messaging/kafka"
)

// check_events tails the storefront event topic and prints each envelope.
func main() {
	brokers := flag.String("brokers", os.Getenv("KAFKA_BROKERS"), "Comma separated Kafka brokers")
	topic := flag.String("topic", topicFromEnv(), "Topic to read")
	group := flag.String("group", "storefront-check-events", "Consumer group id")
	eventType := flag.String("type", "", "Only print events of this type")
	limit := flag.Int("limit", 0, "Stop after this many printed events (0 = no limit)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	list := strings.Split(*brokers, ",")
	if *brokers == "" {
		logger.Error("-brokers flag or KAFKA_BROKERS is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	broker := kafka.NewBroker(list, logger)
	defer broker.Close()

	p := &printer{out: os.Stdout, eventType: *eventType, limit: *limit, done: cancel}
	logger.Info("tailing events", "topic", *topic, "brokers", list)
	tail(ctx, broker, *topic, *group, p)
	logger.Info("stopped", "printed", p.count)
}

func tail(ctx context.Context, sub messaging.Subscriber, topic, group string, p *printer) {
	sub.Consume(ctx, topic, group, p.handle)
}

// printer writes matching envelopes one per line.
type printer struct {
	out       io.Writer
	eventType string
	limit     int
	done      context.CancelFunc

	mu    sync.Mutex
	count int
}

func (p *printer) handle(_ context.Context, payload []byte) error {
	var env struct {
		messaging.Envelope
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if p.eventType != "" && env.Type != p.eventType {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.limit > 0 && p.count >= p.limit {
		return nil
	}
	p.count++
	fmt.Fprintf(p.out, "%d. %s %s (aggregate: %s) %s\n",
		p.count, env.OccurredAt.Format("2006-01-02T15:04:05Z07:00"), env.Type, env.AggregateID, env.Data)

	if p.limit > 0 && p.count >= p.limit && p.done != nil {
		p.done()
	}
	return nil
}

func topicFromEnv() string {
	if t := os.Getenv("KAFKA_TOPIC"); t != "" {
		return t
	}
	return messaging.DefaultTopic
}
