package handlers

import (
	"encoding/json"
	"log/slog"

	"github.com/spacesedan/sentiscore/internal/apperr"
	"github.com/spacesedan/sentiscore/internal/bus"
)

// handleDirect answers a JSON array of tokens with a JSON array of scores
// of the same length and order.
func (h *CalculateHandler) handleDirect(msg bus.Message) (bus.Reply, error) {
	tokens, err := decodeTokens(msg.Body)
	if err != nil {
		return bus.Reply{}, err
	}

	slog.Debug("[CalculateHandler] Received words",
		slog.String("correlation_id", msg.CorrelationID),
		slog.Any("words", tokens))

	scores := h.scorer.Scores(tokens)

	slog.Debug("[CalculateHandler] Sentiment weights",
		slog.String("correlation_id", msg.CorrelationID),
		slog.Any("scores", scores))

	return okReply(scores)
}

// decodeTokens rejects anything other than an array whose elements are all
// strings. null elements would silently decode as "" so they are checked.
func decodeTokens(body []byte) ([]string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperr.BadRequest("request body is not a JSON array", err)
	}

	tokens := make([]string, len(raw))
	for i, element := range raw {
		if string(element) == "null" {
			return nil, apperr.BadRequest("token must be a string, got null", nil).WithContext("index", i)
		}
		if err := json.Unmarshal(element, &tokens[i]); err != nil {
			return nil, apperr.BadRequest("token must be a string", err).WithContext("index", i)
		}
	}
	return tokens, nil
}
