package models

// Sentence is one tokenized sentence produced by upstream NLP.
type Sentence struct {
	Tokens []string `json:"tokens"`
}

// AnalyzedText is the tokenized form of a document, stored under the
// document's nlp field. Fields other than sentences are ignored.
type AnalyzedText struct {
	Sentences []Sentence `json:"sentences"`
}

// CalculatedSentiment holds one score per token and their mean.
type CalculatedSentiment struct {
	Average float64 `json:"average"`
	Scores  []int32 `json:"scores"`
}

// SentimentAnalysis is written to the document's sentiment field, one
// entry per sentence in document order.
type SentimentAnalysis struct {
	Sentiments []CalculatedSentiment `json:"sentiments"`
}
