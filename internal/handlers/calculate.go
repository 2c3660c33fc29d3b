// Package handlers implements the sentiment.calculate request protocols.
//
// A request body that is a JSON array of strings is scored directly and
// answered with the scores (direct mode). A body that is a JSON string is a
// document id: the document's tokenized text is read from shared state,
// scored, written back, and the id is echoed (document mode).
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/spacesedan/sentiscore/internal/apperr"
	"github.com/spacesedan/sentiscore/internal/bus"
	"github.com/spacesedan/sentiscore/internal/metrics"
	"github.com/spacesedan/sentiscore/internal/sentiment"
	"github.com/spacesedan/sentiscore/internal/store"
)

type Mode string

const (
	ModeDirect   Mode = "direct"
	ModeDocument Mode = "document"
	ModeInvalid  Mode = "invalid"
)

type CalculateHandler struct {
	scorer  *sentiment.Scorer
	gateway store.Gateway
}

func NewCalculateHandler(scorer *sentiment.Scorer, gateway store.Gateway) *CalculateHandler {
	return &CalculateHandler{
		scorer:  scorer,
		gateway: gateway,
	}
}

func (h *CalculateHandler) Handle(ctx context.Context, msg bus.Message) (bus.Reply, error) {
	mode := DetectMode(msg.Body)
	start := time.Now()

	var (
		reply bus.Reply
		err   error
	)
	switch mode {
	case ModeDirect:
		reply, err = h.handleDirect(msg)
	case ModeDocument:
		reply, err = h.handleDocument(ctx, msg)
	default:
		err = apperr.BadRequest("request body must be a JSON array of strings or a JSON string", nil)
	}

	metrics.RequestDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(string(mode), outcome(err)).Inc()
	return reply, err
}

// DetectMode picks the protocol from the first JSON token of body.
func DetectMode(body []byte) Mode {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ModeInvalid
	}

	switch trimmed[0] {
	case '[':
		return ModeDirect
	case '"':
		return ModeDocument
	default:
		return ModeInvalid
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperr.KindOf(err))
}

func okReply(v any) (bus.Reply, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return bus.Reply{}, err
	}
	return bus.Reply{Status: bus.StatusOK, Body: body}, nil
}
