// Package bus defines the transport-neutral request/reply contract between
// the message transport and the request handlers.
package bus

import "context"

// Status tells the caller how to read a reply body.
type Status string

const (
	StatusOK         Status = "ok"
	StatusBadRequest Status = "bad_request"
)

// Message is one inbound request.
type Message struct {
	Address       string
	CorrelationID string
	// ReplyTo is where the reply goes. Empty means the caller expects none.
	ReplyTo string
	Body    []byte
}

// Reply is the payload sent back to the caller of a Message.
type Reply struct {
	Status Status
	Body   []byte
}

// Handler processes one request. Returning an error of kind bad_request
// makes the Dispatcher answer with StatusBadRequest; any other error drops
// the request without a reply.
type Handler interface {
	Handle(ctx context.Context, msg Message) (Reply, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg Message) (Reply, error)

func (f HandlerFunc) Handle(ctx context.Context, msg Message) (Reply, error) {
	return f(ctx, msg)
}

// Replier delivers a Reply to the caller of req.
type Replier interface {
	Reply(ctx context.Context, req Message, reply Reply) error
}
