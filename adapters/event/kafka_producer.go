package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

const TopicCredibilityEvents = "credibility.events"

// messageWriter is the subset of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	writer  messageWriter
	metrics *metrics.Recorder
	log     logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, rec *metrics.Recorder, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicCredibilityEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producer successfully.", zap.Strings("brokers", brokers))
	return &KafkaProducerClient{writer: writer, metrics: rec, log: log}, nil
}

// Publish keys the message by user so one user's events stay ordered on a partition.
func (c *KafkaProducerClient) Publish(ctx context.Context, evt service.EvidenceEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal evidence event: %w", err)
	}

	err = c.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.UserID.String()),
		Value: value,
	})
	c.metrics.ObserveEvent(string(evt.EventType), err)
	if err != nil {
		return fmt.Errorf("write evidence event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.writer != nil {
		if err := c.writer.Close(); err != nil {
			c.log.Warn("Failed to close Kafka producer", zap.Error(err))
			return
		}
	}
	c.log.Info("Closed Kafka Producer")
}
