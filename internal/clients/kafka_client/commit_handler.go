package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// OffsetCommitter is the part of *kafka.Consumer the commit handler needs.
type OffsetCommitter interface {
	CommitOffsets(offsets []kafka.TopicPartition) ([]kafka.TopicPartition, error)
}

type partitionKey struct {
	topic     string
	partition int32
}

// partitionOffsets holds the offsets dispatched on one partition, in read
// order, and which of them have finished.
type partitionOffsets struct {
	pending  []kafka.Offset
	finished map[kafka.Offset]bool
	// committed is the next offset to consume, as last committed.
	committed kafka.Offset
}

// KafkaCommitHandler commits, per partition, the highest offset below which
// every dispatched request has finished. Requests finish out of order, so a
// finished offset is held back until everything read before it is done.
type KafkaCommitHandler struct {
	committer OffsetCommitter
	retryWait time.Duration

	mu         sync.Mutex
	partitions map[partitionKey]*partitionOffsets

	commitMu sync.Mutex
}

func NewCommitHandler(committer OffsetCommitter) *KafkaCommitHandler {
	return &KafkaCommitHandler{
		committer:  committer,
		retryWait:  RETRY_DELAY,
		partitions: make(map[partitionKey]*partitionOffsets),
	}
}

// Track records msg as in flight. Messages of a partition must be tracked in
// the order they were read.
func (ch *KafkaCommitHandler) Track(msg *kafka.Message) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	p := ch.partition(msg.TopicPartition)
	p.pending = append(p.pending, msg.TopicPartition.Offset)
}

// Done marks msg finished and commits the partition if its contiguous
// finished prefix moved forward. ctx only bounds retries: the first attempt
// always runs so requests drained during shutdown still get committed.
func (ch *KafkaCommitHandler) Done(ctx context.Context, msg *kafka.Message) error {
	tp, ok := ch.finish(msg.TopicPartition)
	if !ok {
		return nil
	}
	return ch.Commit(ctx, tp)
}

func (ch *KafkaCommitHandler) finish(tp kafka.TopicPartition) (kafka.TopicPartition, bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	p := ch.partition(tp)
	p.finished[tp.Offset] = true

	next := kafka.OffsetInvalid
	for len(p.pending) > 0 && p.finished[p.pending[0]] {
		delete(p.finished, p.pending[0])
		next = p.pending[0] + 1
		p.pending = p.pending[1:]
	}
	if next == kafka.OffsetInvalid {
		return kafka.TopicPartition{}, false
	}

	tp.Offset = next
	return tp, true
}

func (ch *KafkaCommitHandler) partition(tp kafka.TopicPartition) *partitionOffsets {
	key := partitionKey{partition: tp.Partition}
	if tp.Topic != nil {
		key.topic = *tp.Topic
	}

	p, ok := ch.partitions[key]
	if !ok {
		p = &partitionOffsets{
			finished:  make(map[kafka.Offset]bool),
			committed: kafka.OffsetInvalid,
		}
		ch.partitions[key] = p
	}
	return p
}

// Commit stores tp.Offset as the next offset to consume on tp. An offset at
// or behind the last committed one for the partition is skipped.
func (ch *KafkaCommitHandler) Commit(ctx context.Context, tp kafka.TopicPartition) error {
	if ch.committer == nil {
		return errors.New("[KafkaCommitHandler] Kafka consumer has not been initialized")
	}

	ch.commitMu.Lock()
	defer ch.commitMu.Unlock()

	if ch.alreadyCommitted(tp) {
		return nil
	}

	for attempt := 1; ; attempt++ {
		_, err := ch.committer.CommitOffsets([]kafka.TopicPartition{tp})
		if err == nil {
			ch.markCommitted(tp)
			slog.Debug("[KafkaCommitHandler] Committed offset",
				slog.Int("partition", int(tp.Partition)),
				slog.String("offset", tp.Offset.String()))
			return nil
		}

		var kafkaErr kafka.Error
		if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrAllBrokersDown {
			slog.Error("[KafkaCommitHandler] All Kafka brokers are down. Aborting commit")
			return err
		}
		if attempt >= MAX_RETRIES {
			return fmt.Errorf("[KafkaCommitHandler] failed to commit offset %s after %d attempts: %w",
				tp.Offset, attempt, err)
		}

		slog.Warn("[KafkaCommitHandler] Failed to commit offset, retrying...",
			slog.Int("attempt", attempt),
			slog.Int("partition", int(tp.Partition)),
			slog.String("offset", tp.Offset.String()),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			slog.Warn("[KafkaCommitHandler] Shutting down, giving up on commit",
				slog.String("offset", tp.Offset.String()))
			return ctx.Err()
		case <-time.After(ch.retryWait):
		}
	}
}

func (ch *KafkaCommitHandler) alreadyCommitted(tp kafka.TopicPartition) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	committed := ch.partition(tp).committed
	return committed != kafka.OffsetInvalid && tp.Offset <= committed
}

func (ch *KafkaCommitHandler) markCommitted(tp kafka.TopicPartition) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	ch.partition(tp).committed = tp.Offset
}
