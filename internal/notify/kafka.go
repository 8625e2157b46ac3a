// Package notify implements the notification collaborator.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/service-center/internal/outbox"
)

const producerName = "service-center-api"

// Envelope is the wire format published on the notification topic.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes each notification synchronously so that a broker
// failure is reported back to the outbox and retried.
type KafkaNotifier struct {
	w messageWriter
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (k *KafkaNotifier) Notify(ctx context.Context, n outbox.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	env := Envelope{
		EventID:      uuid.NewString(),
		EventType:    n.Kind,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     producerName,
		Payload:      payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	return k.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.Recipient),
		Value: value,
		Headers: []kafka.Header{
			{Key: "notification_id", Value: []byte(n.ID)},
		},
	})
}

func (k *KafkaNotifier) Close() error {
	return k.w.Close()
}

var _ outbox.Notifier = (*KafkaNotifier)(nil)
