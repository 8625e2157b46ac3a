package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-center/internal/outbox"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaNotifier_PublishesEnvelopeKeyedByRecipient(t *testing.T) {
	w := &recordingWriter{}
	k := &KafkaNotifier{w: w}

	err := k.Notify(context.Background(), outbox.Notification{
		ID:         "n-1",
		Kind:       "invoice",
		Recipient:  "ana@example.com",
		Subject:    "Your Service is Complete - Final Invoice",
		Attachment: []byte("INVOICE #1"),
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "ana@example.com", string(msg.Key))

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "invoice", env.EventType)
	assert.Equal(t, producerName, env.Producer)

	var n outbox.Notification
	require.NoError(t, json.Unmarshal(env.Payload, &n))
	assert.Equal(t, []byte("INVOICE #1"), n.Attachment)
}

func TestKafkaNotifier_ReturnsBrokerError(t *testing.T) {
	k := &KafkaNotifier{w: &recordingWriter{err: errors.New("broker down")}}

	err := k.Notify(context.Background(), outbox.Notification{ID: "n-2", Kind: "booking_confirmed"})
	assert.EqualError(t, err, "broker down")
}
