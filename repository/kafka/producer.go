package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers []string
	Topic   string
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg Config) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            3,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				slog.Warn("kafka write failed", "topic", cfg.Topic, "count", len(msgs), "err", err)
			}
		},
	}
	return &Producer{writer: w}
}

func (p *Producer) SendMessage(ctx context.Context, key, value []byte) error {
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error { return p.writer.Close() }

// Keyed is an event that knows its partition key and type name.
type Keyed interface {
	EventKey() string
	EventType() string
}

// Sink forwards bus events as JSON envelopes.
type Sink[T Keyed] struct {
	P *Producer
}

type envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func (s Sink[T]) Forward(ctx context.Context, ev T) error {
	value, err := json.Marshal(envelope{Type: ev.EventType(), OccurredAt: time.Now().UTC(), Payload: ev})
	if err != nil {
		return err
	}
	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.P.SendMessage(sendCtx, []byte(ev.EventKey()), value)
}
