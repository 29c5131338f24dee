package notifier

import (
	"context"
	"fmt"

	"github.com/mailmind/mailmind/config"
	"github.com/mailmind/mailmind/internal/entity"
)

// Sink receives fired-reminder notifications. Delivery is best effort: the
// due-check job logs a failed Notify and moves on, it never retries.
type Sink interface {
	Notify(ctx context.Context, reminder *entity.Reminder) error
}

// NewSink selects the external delivery implementation once, at construction
// time, based on configuration.
func NewSink(cfg config.NotifierConfig) (Sink, error) {
	switch cfg.Driver {
	case "log", "":
		return NewLogSink(), nil
	case "rabbitmq":
		return NewRabbitSink(cfg.Rabbit)
	case "kafka":
		return NewKafkaSink(cfg.Kafka), nil
	default:
		return nil, fmt.Errorf("unknown notifier driver %q", cfg.Driver)
	}
}
