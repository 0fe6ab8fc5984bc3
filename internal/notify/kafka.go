package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const bookingCreatedTopic = "booking.created"

// KafkaSender publishes booking events to Kafka.
type KafkaSender struct {
	writer *kafka.Writer
}

// NewKafkaSender creates a sender writing to the booking events topic.
func NewKafkaSender(brokers []string) *KafkaSender {
	return &KafkaSender{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        bookingCreatedTopic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (s *KafkaSender) BookingCreated(ctx context.Context, ev BookingCreatedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal booking created event: %w", err)
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.BookingID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish booking created event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (s *KafkaSender) Close() error {
	return s.writer.Close()
}
