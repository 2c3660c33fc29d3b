package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"
	"github.com/spacesedan/sentiscore/internal/bus"
)

// ErrNoReply is returned by Requester.Request when the reply does not
// arrive before the context expires.
var ErrNoReply = errors.New("no reply before timeout")

const replyPollTimeout = 200 * time.Millisecond

// Requester sends requests and waits for the matching reply on its own
// reply topic. It is meant for one request at a time.
type Requester struct {
	producer   *Producer
	consumer   *kafka.Consumer
	topic      string
	replyTopic string
}

func NewRequester(cfg KafkaConfig) (*Requester, error) {
	producer, err := NewProducer(cfg)
	if err != nil {
		return nil, err
	}

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"group.id":           "sentictl-" + uuid.NewString(),
		"auto.offset.reset":  "latest",
		"enable.auto.commit": false,
	})
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("[KafkaRequester] Failed to create reply consumer: %w", err)
	}
	if err := consumer.SubscribeTopics([]string{cfg.ReplyTopic}, nil); err != nil {
		consumer.Close()
		producer.Close()
		return nil, fmt.Errorf("[KafkaRequester] Failed to subscribe to %s: %w", cfg.ReplyTopic, err)
	}

	return &Requester{
		producer:   producer,
		consumer:   consumer,
		topic:      cfg.RequestTopic,
		replyTopic: cfg.ReplyTopic,
	}, nil
}

func (r *Requester) Close() {
	r.consumer.Close()
	r.producer.Close()
}

// Request sends body and returns the reply. A document-mode request that
// fails on the worker side never gets a reply, so callers must bound ctx.
func (r *Requester) Request(ctx context.Context, body []byte) (bus.Reply, error) {
	if err := r.waitForAssignment(ctx); err != nil {
		return bus.Reply{}, err
	}

	correlationID := uuid.NewString()
	if err := r.producer.Request(ctx, r.topic, r.replyTopic, correlationID, body); err != nil {
		return bus.Reply{}, err
	}
	slog.Debug("[KafkaRequester] Request sent",
		slog.String("topic", r.topic),
		slog.String("correlation_id", correlationID))

	for {
		msg, err := r.poll(ctx)
		if err != nil {
			return bus.Reply{}, err
		}
		if msg == nil {
			continue
		}

		id, reply := ParseReply(msg)
		if id == correlationID {
			return reply, nil
		}
	}
}

// waitForAssignment polls until the reply partitions are assigned so that
// a reply produced right after the request is not skipped by the "latest"
// offset reset.
func (r *Requester) waitForAssignment(ctx context.Context) error {
	for {
		partitions, err := r.consumer.Assignment()
		if err != nil {
			return fmt.Errorf("[KafkaRequester] failed to read assignment: %w", err)
		}
		if len(partitions) > 0 {
			return nil
		}
		if _, err := r.poll(ctx); err != nil {
			return err
		}
	}
}

func (r *Requester) poll(ctx context.Context) (*kafka.Message, error) {
	if ctx.Err() != nil {
		return nil, ErrNoReply
	}

	msg, err := r.consumer.ReadMessage(replyPollTimeout)
	if err != nil {
		var kafkaErr kafka.Error
		if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrTimedOut {
			return nil, nil
		}
		return nil, fmt.Errorf("[KafkaRequester] failed to read reply: %w", err)
	}
	return msg, nil
}
