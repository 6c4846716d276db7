package journal

import (
	"context"
	"encoding/json"
	"time"

	kafka "github.com/segmentio/kafka-go"
)

// KafkaJournal publishes fills to a topic for downstream consumers. Records
// are keyed by real order id so fills against the same order land on the
// same partition in order.
type KafkaJournal struct {
	writer *kafka.Writer
}

func NewKafkaJournal(brokers []string, topic string) *KafkaJournal {
	return &KafkaJournal{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (j *KafkaJournal) Record(ctx context.Context, trade *GhostTrade) error {
	payload, err := json.Marshal(trade)
	if err != nil {
		return err
	}

	return j.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(trade.RealOrderID),
		Value: payload,
	})
}

func (j *KafkaJournal) Close() error {
	return j.writer.Close()
}
