package models

// Field names of a document in shared state.
const (
	FieldNLP       = "nlp"
	FieldSentiment = "sentiment"
)
