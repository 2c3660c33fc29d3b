package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spacesedan/sentiscore/internal/apperr"
	"github.com/spacesedan/sentiscore/internal/bus"
	"github.com/spacesedan/sentiscore/internal/models"
)

// handleDocument scores the document named by the request and acknowledges
// with its id. Failures after the id is decoded are returned as not_found,
// decode_error or store_error so the request is dropped without a reply.
func (h *CalculateHandler) handleDocument(ctx context.Context, msg bus.Message) (bus.Reply, error) {
	var id string
	if err := json.Unmarshal(msg.Body, &id); err != nil {
		return bus.Reply{}, apperr.BadRequest("request body is not a JSON string", err)
	}

	analysis, err := h.AnalyzeDocument(ctx, id)
	if err != nil {
		return bus.Reply{}, err
	}

	slog.Info("[CalculateHandler] Stored sentiment analysis",
		slog.String("document_id", id),
		slog.Int("sentences", len(analysis.Sentiments)))

	return okReply(id)
}

// AnalyzeDocument reads the nlp field of document id, scores every
// sentence and writes the result to the sentiment field. There is no lock
// across the read and the write; a concurrent writer to the same document
// may be overwritten.
func (h *CalculateHandler) AnalyzeDocument(ctx context.Context, id string) (models.SentimentAnalysis, error) {
	raw, err := h.gateway.Get(ctx, id, models.FieldNLP)
	if err != nil {
		return models.SentimentAnalysis{}, fmt.Errorf("fetch document %q: %w", id, err)
	}

	var text models.AnalyzedText
	if err := json.Unmarshal([]byte(raw), &text); err != nil {
		return models.SentimentAnalysis{}, apperr.Decode(fmt.Sprintf("invalid %s payload for document %q", models.FieldNLP, id), err)
	}

	analysis := h.scorer.ScoreDocument(text)

	encoded, err := json.Marshal(analysis)
	if err != nil {
		return models.SentimentAnalysis{}, fmt.Errorf("encode sentiment of document %q: %w", id, err)
	}

	if err := h.gateway.Put(ctx, id, models.FieldSentiment, string(encoded)); err != nil {
		return models.SentimentAnalysis{}, fmt.Errorf("persist document %q: %w", id, err)
	}
	return analysis, nil
}
