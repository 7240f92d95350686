// Package publisher delivers appended audit entries to Kafka.
//
// Delivery is asynchronous and fail-open: entries are queued on a bounded
// buffer and a background worker produces them. The in-process ledger store
// is canonical; a full buffer or a broker outage drops or delays delivery
// but never fails a ledger append.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	ledgermetrics "anchorledger/internal/ledger/metrics"
	"anchorledger/internal/ledger/models"
)

const bufferSize = 1024

// Publisher produces audit entries to a Kafka topic, keyed by log ID so the
// total order is reconstructible from the partition.
type Publisher struct {
	client  *kgo.Client
	topic   string
	inbox   chan models.AuditLog
	logger  *slog.Logger
	metrics *ledgermetrics.Metrics
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *ledgermetrics.Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// New connects to the brokers and ensures the topic exists.
func New(brokers []string, topic string, opts ...Option) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(context.Background(), client, topic); err != nil {
		client.Close()
		return nil, err
	}

	p := &Publisher{
		client: client,
		topic:  topic,
		inbox:  make(chan models.AuditLog, bufferSize),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	resps, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	for _, resp := range resps {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create audit topic %s: %w", resp.Topic, resp.Err)
		}
	}
	return nil
}

// Publish queues an entry for delivery. Never blocks; a full buffer drops
// the entry and counts the drop.
func (p *Publisher) Publish(entry models.AuditLog) {
	select {
	case p.inbox <- entry:
	default:
		p.metrics.IncrementPublishesDropped()
		p.logger.Warn("audit publish buffer full, dropping entry",
			"log_id", entry.LogID,
			"session_id", entry.SessionID,
		)
	}
}

// Run consumes the inbox until the context is canceled, draining what is
// already queued before returning. Cancellation is the normal shutdown path
// and returns nil.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.drain()
			return nil
		case entry := <-p.inbox:
			p.produce(ctx, entry)
		}
	}
}

func (p *Publisher) drain() {
	for {
		select {
		case entry := <-p.inbox:
			p.produce(context.Background(), entry)
		default:
			return
		}
	}
}

func (p *Publisher) produce(ctx context.Context, entry models.AuditLog) {
	payload, err := json.Marshal(entry)
	if err != nil {
		p.logger.Error("marshal audit entry", "log_id", entry.LogID, "error", err)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(strconv.FormatUint(entry.LogID, 10)),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		p.logger.Error("audit entry delivery failed",
			"log_id", entry.LogID,
			"error", err,
		)
	}
}

// Close releases the Kafka client.
func (p *Publisher) Close() {
	p.client.Close()
}
