package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/mailmind/mailmind/config"
	"github.com/mailmind/mailmind/internal/entity"
)

// KafkaSink publishes fired reminders to a Kafka topic, keyed by reminder id.
type KafkaSink struct {
	writer *kafka.Writer
}

func NewKafkaSink(cfg config.KafkaConfig) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (s *KafkaSink) Notify(ctx context.Context, reminder *entity.Reminder) error {
	body, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(reminder.ID),
		Value: body,
	})
	if err != nil {
		return fmt.Errorf("failed to write notification to kafka: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
