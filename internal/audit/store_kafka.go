package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"

	"hdc/pkg/platform/sentinel"
)

// KafkaStore publishes audit events to a Kafka topic, keyed by booking id
// so events for one case stay ordered within a partition. Reads are not
// supported over Kafka.
type KafkaStore struct {
	client *kgo.Client
	topic  string
}

func NewKafkaStore(brokers []string, topic string) (*KafkaStore, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("audit kafka client: %w", err)
	}
	return &KafkaStore{client: client, topic: topic}, nil
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *KafkaStore) ListByBookingID(context.Context, int64) ([]Event, error) {
	return nil, fmt.Errorf("audit events are write-only over kafka: %w", sentinel.ErrInvalidState)
}

func (s *KafkaStore) Close() {
	s.client.Close()
}
