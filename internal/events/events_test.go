package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisherWritesKeyedEnvelope(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w}

	e := New(BookingCreated, "b-1", map[string]string{"status": "pending"})
	require.NoError(t, p.Publish(context.Background(), e))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "b-1", string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "booking.created", string(msg.Headers[0].Value))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "booking.created", got["event_type"])
	assert.NotEmpty(t, got["event_id"])
	assert.Equal(t, map[string]any{"status": "pending"}, got["data"])
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{w: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), New(InquiryCreated, "q-1", nil))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "inquiry.created")
}

func TestNewKafkaPublisherFlushesEachMessage(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "installbay.events")
	w, ok := p.w.(*kafka.Writer)
	require.True(t, ok)

	assert.Equal(t, 1, w.BatchSize)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	assert.Equal(t, "installbay.events", w.Topic)
	assert.Equal(t, 1, w.MaxAttempts)
}
