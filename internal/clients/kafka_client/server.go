package kafka_client

import (
	"context"
	"errors"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/sentiscore/internal/bus"
)

// Serve reads requests from consumer and hands each one to dispatcher until
// ctx is cancelled, then waits for in-flight requests to finish. Handlers
// run on a context that outlives ctx so draining requests can still reply.
// Offsets are committed per partition only up to the last request that
// finished with every earlier one, so a crash replays unfinished requests
// instead of skipping them.
func Serve(ctx context.Context, consumer *kafka.Consumer, dispatcher *bus.Dispatcher) error {
	iterator := NewKafkaMessageIterator(ctx, consumer)
	drainCtx := context.WithoutCancel(ctx)
	committer := NewCommitHandler(consumer)

	slog.Info("[KafkaServer] Listening for requests...")

	var serveErr error
	for {
		msg, err := iterator.Next()
		if err != nil {
			if ctx.Err() != nil {
				slog.Warn("[KafkaServer] Stopping consumer...")
				break
			}

			var kafkaErr kafka.Error
			if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrAllBrokersDown {
				serveErr = err
				break
			}

			slog.Error("[KafkaServer] Kafka Consumer Error",
				slog.String("error", err.Error()))
			continue
		}

		committer.Track(msg)
		dispatcher.Dispatch(drainCtx, ToBusMessage(msg), func() {
			if err := committer.Done(ctx, msg); err != nil {
				slog.Warn("[KafkaServer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		})
	}

	slog.Info("[KafkaServer] Waiting for in-flight requests...")
	dispatcher.Wait()
	return serveErr
}
