package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/pkg/logger"
)

const ConsumerGroupRecalculator = "credibility-recalculator"

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EvidenceHandler processes one decoded event.
type EvidenceHandler func(ctx context.Context, evt service.EvidenceEvent) error

type EvidenceConsumer struct {
	reader  messageReader
	handler EvidenceHandler
	log     logger.Logger
}

func NewEvidenceConsumer(cfg config.Config, handler EvidenceHandler, log logger.Logger) (*EvidenceConsumer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicCredibilityEvents,
		GroupID:  ConsumerGroupRecalculator,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &EvidenceConsumer{reader: reader, handler: handler, log: log}, nil
}

// Run consumes until ctx is cancelled. Undecodable messages are committed and
// skipped. A message whose handler fails is logged and not committed, but group
// offsets are positional: once a later message in the partition commits, the
// failed one will not be delivered again. It is only redelivered when the
// worker restarts before anything after it commits. The next event for the
// same user recalculates from current state.
func (c *EvidenceConsumer) Run(ctx context.Context) error {
	c.log.Info("Worker listening", zap.String("topic", TopicCredibilityEvents), zap.String("group", ConsumerGroupRecalculator))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("Failed to read message from Kafka", err)
			continue
		}
		c.handle(ctx, msg)
	}
}

func (c *EvidenceConsumer) handle(ctx context.Context, msg kafka.Message) {
	l := c.log.With(zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset), zap.String("key", string(msg.Key)))

	var evt service.EvidenceEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		l.Warn("Failed to unmarshal event, skipping", zap.Error(err))
		c.commit(ctx, msg, l)
		return
	}

	if err := c.handler(ctx, evt); err != nil {
		l.Error("Failed to process event", err, zap.String("event_type", string(evt.EventType)))
		return
	}
	c.commit(ctx, msg, l)
}

func (c *EvidenceConsumer) commit(ctx context.Context, msg kafka.Message, l logger.Logger) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		l.Error("Failed to commit message", err)
	}
}

func (c *EvidenceConsumer) Close() error {
	return c.reader.Close()
}
