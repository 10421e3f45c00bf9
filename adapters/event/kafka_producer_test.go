package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/pkg/logger"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestPublishKeysByUser(t *testing.T) {
	w := &fakeWriter{}
	c := &KafkaProducerClient{writer: w, log: logger.NewNop()}
	userID := uuid.New()
	evt := service.EvidenceEvent{
		EventType:  service.EventSkillsUpdated,
		UserID:     userID,
		OccurredAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, c.Publish(context.Background(), evt))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, userID.String(), string(w.msgs[0].Key))

	var decoded service.EvidenceEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, evt, decoded)
	assert.Contains(t, string(w.msgs[0].Value), `"event_type":"skills.updated"`)
}

func TestPublishWrapsWriterError(t *testing.T) {
	c := &KafkaProducerClient{writer: &fakeWriter{err: errors.New("broker down")}, log: logger.NewNop()}

	err := c.Publish(context.Background(), service.EvidenceEvent{EventType: service.EventProfileUpdated, UserID: uuid.New()})
	assert.ErrorContains(t, err, "broker down")
}
