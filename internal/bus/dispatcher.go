package bus

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/spacesedan/sentiscore/internal/apperr"
	"github.com/spacesedan/sentiscore/internal/metrics"
)

// Dispatcher runs every message on its own goroutine and sends at most one
// reply per message.
type Dispatcher struct {
	handler Handler
	replier Replier
	wg      sync.WaitGroup
}

func NewDispatcher(handler Handler, replier Replier) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		replier: replier,
	}
}

// Dispatch handles msg asynchronously. done, if not nil, runs after the
// message is finished whether it was answered or dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message, done func()) {
	d.wg.Add(1)
	metrics.RequestsInFlight.Inc()

	go func() {
		defer d.wg.Done()
		defer metrics.RequestsInFlight.Dec()
		if done != nil {
			defer done()
		}

		d.process(ctx, msg)
	}()
}

// Wait blocks until every dispatched message is finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) process(ctx context.Context, msg Message) {
	reply, err := d.handle(ctx, msg)
	if err != nil {
		if !apperr.IsKind(err, apperr.KindBadRequest) {
			slog.Error("[Dispatcher] Request dropped without reply",
				slog.String("address", msg.Address),
				slog.String("correlation_id", msg.CorrelationID),
				slog.String("kind", string(apperr.KindOf(err))),
				slog.String("error", err.Error()))
			return
		}

		slog.Warn("[Dispatcher] Rejecting bad request",
			slog.String("address", msg.Address),
			slog.String("correlation_id", msg.CorrelationID),
			slog.String("error", err.Error()))
		reply = Reply{Status: StatusBadRequest, Body: []byte(err.Error())}
	}

	d.send(ctx, msg, reply)
}

func (d *Dispatcher) handle(ctx context.Context, msg Message) (reply Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Dispatcher] Handler panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("[Dispatcher] handler panic: %v", r)
		}
	}()

	return d.handler.Handle(ctx, msg)
}

func (d *Dispatcher) send(ctx context.Context, msg Message, reply Reply) {
	if msg.ReplyTo == "" {
		slog.Debug("[Dispatcher] No reply-to address, reply discarded",
			slog.String("correlation_id", msg.CorrelationID))
		return
	}

	if err := d.replier.Reply(ctx, msg, reply); err != nil {
		metrics.RepliesTotal.WithLabelValues(string(reply.Status), "error").Inc()
		slog.Error("[Dispatcher] Failed to send reply",
			slog.String("reply_to", msg.ReplyTo),
			slog.String("correlation_id", msg.CorrelationID),
			slog.String("error", err.Error()))
		return
	}
	metrics.RepliesTotal.WithLabelValues(string(reply.Status), "sent").Inc()
}
