package sentiment

import (
	"github.com/spacesedan/sentiscore/internal/models"
)

// Lexicon is the read-only word table a Scorer consults.
type Lexicon interface {
	Score(word string) int32
}

// Scorer maps tokens to lexicon scores. It holds no mutable state and can
// be shared by every in-flight request.
type Scorer struct {
	lexicon Lexicon
}

func NewScorer(lexicon Lexicon) *Scorer {
	return &Scorer{lexicon: lexicon}
}

// Scores returns one score per token in input order; unknown tokens score 0.
func (s *Scorer) Scores(tokens []string) []int32 {
	scores := make([]int32, len(tokens))
	for i, token := range tokens {
		scores[i] = s.lexicon.Score(token)
	}
	return scores
}

// Score returns the per-token scores of a sentence and their mean. The mean
// of an empty sentence is 0.
func (s *Scorer) Score(tokens []string) models.CalculatedSentiment {
	scores := s.Scores(tokens)
	return models.CalculatedSentiment{
		Average: average(scores),
		Scores:  scores,
	}
}

// ScoreDocument scores every sentence of text, keeping sentence order.
func (s *Scorer) ScoreDocument(text models.AnalyzedText) models.SentimentAnalysis {
	sentiments := make([]models.CalculatedSentiment, 0, len(text.Sentences))
	for _, sentence := range text.Sentences {
		sentiments = append(sentiments, s.Score(sentence.Tokens))
	}
	return models.SentimentAnalysis{Sentiments: sentiments}
}

func average(scores []int32) float64 {
	if len(scores) == 0 {
		return 0
	}

	var sum int64
	for _, score := range scores {
		sum += int64(score)
	}
	return float64(sum) / float64(len(scores))
}
