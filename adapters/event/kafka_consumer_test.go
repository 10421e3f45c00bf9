package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/pkg/logger"
)

type fakeReader struct {
	queue     []kafka.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.queue) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func TestConsumerCommitsProcessedAndUndecodable(t *testing.T) {
	okUser, failUser := uuid.New(), uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		queue: []kafka.Message{
			{Offset: 1, Value: []byte(`{"event_type":"skills.updated","user_id":"` + okUser.String() + `"}`)},
			{Offset: 2, Value: []byte(`not json`)},
			{Offset: 3, Value: []byte(`{"event_type":"profile.updated","user_id":"` + failUser.String() + `"}`)},
		},
	}

	var handled []uuid.UUID
	handler := func(_ context.Context, evt service.EvidenceEvent) error {
		handled = append(handled, evt.UserID)
		if evt.UserID == failUser {
			return errors.New("db down")
		}
		return nil
	}

	c := &EvidenceConsumer{reader: reader, handler: handler, log: logger.NewNop()}
	require.NoError(t, c.Run(ctx))

	assert.Equal(t, []uuid.UUID{okUser, failUser}, handled)
	assert.Equal(t, []int64{1, 2}, reader.committed, "a failed message stays uncommitted")
}

func TestConsumerLaterCommitPassesFailedMessage(t *testing.T) {
	user := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		queue: []kafka.Message{
			{Partition: 0, Offset: 7, Value: []byte(`{"event_type":"profile.updated","user_id":"` + user.String() + `"}`)},
			{Partition: 0, Offset: 8, Value: []byte(`{"event_type":"skills.updated","user_id":"` + user.String() + `"}`)},
		},
	}

	calls := 0
	handler := func(context.Context, service.EvidenceEvent) error {
		calls++
		if calls == 1 {
			return errors.New("db down")
		}
		return nil
	}

	c := &EvidenceConsumer{reader: reader, handler: handler, log: logger.NewNop()}
	require.NoError(t, c.Run(ctx))

	assert.Equal(t, 2, calls, "the failed message is not retried in process")
	assert.Equal(t, []int64{8}, reader.committed, "the committed offset moves past the failed message")
}
