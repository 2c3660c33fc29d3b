package kafka_client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/sentiscore/internal/bus"
)

// Producer sends replies and requests and waits for each delivery report.
type Producer struct {
	producer *kafka.Producer
}

func NewProducer(cfg KafkaConfig) (*Producer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...")

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   cfg.Broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"enable.idempotence":  true,
		"acks":                "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	go logProducerEvents(p)

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &Producer{producer: p}, nil
}

// logProducerEvents drains client-level events. Delivery reports go to the
// per-message channels in produce.
func logProducerEvents(p *kafka.Producer) {
	for e := range p.Events() {
		if kafkaErr, ok := e.(kafka.Error); ok {
			slog.Warn("[KafkaClient] Producer error",
				slog.String("code", kafkaErr.Code().String()),
				slog.String("error", kafkaErr.Error()))
		}
	}
}

func (p *Producer) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if remaining := p.producer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

// Reply implements bus.Replier.
func (p *Producer) Reply(ctx context.Context, req bus.Message, reply bus.Reply) error {
	return p.produce(ctx, ReplyMessage(req, reply))
}

// Request publishes a request on topic asking for the reply on replyTo.
func (p *Producer) Request(ctx context.Context, topic, replyTo, correlationID string, body []byte) error {
	return p.produce(ctx, RequestMessage(topic, replyTo, correlationID, body))
}

func (p *Producer) produce(ctx context.Context, msg *kafka.Message) error {
	delivery := make(chan kafka.Event, 1)
	if err := p.producer.Produce(msg, delivery); err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce message: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-delivery:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("[KafkaClient] unexpected delivery event: %v", e)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("[KafkaClient] delivery failed: %w", m.TopicPartition.Error)
		}
		return nil
	}
}
