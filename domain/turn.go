package domain

import (
	"math"

	"github.com/google/uuid"
)

// ClassificationSource tells which stage of the predictor produced a score.
type ClassificationSource string

const (
	SourceSimilarity ClassificationSource = "similarity"
	SourceKeyword    ClassificationSource = "keyword"
	SourceNone       ClassificationSource = "none"
)

// Classification is the predicted intent of one sentence, with a score in [0,1].
type Classification struct {
	Intent string
	Score  float64
	Source ClassificationSource
}

func UnknownClassification() Classification {
	return Classification{Intent: IntentUnknown, Score: 0, Source: SourceNone}
}

// SentenceResult records how one sentence of a message was handled.
// Reply is empty when the sentence produced no text (a repeated greeting).
type SentenceResult struct {
	Sentence       string
	Classification Classification
	Flavor         string
	Reply          string
}

// Turn is one request/response exchange. It is built fresh for every message
// and never shared between calls.
type Turn struct {
	ID             uuid.UUID
	Message        string
	Language       string
	Sentences      []SentenceResult
	Reply          string
	Intent         string
	Score          float64
	OrderConfirmed bool
}

// Probability is the dominant score as a percentage rounded to 2 decimals.
func (t Turn) Probability() float64 {
	return math.Round(t.Score*100*100) / 100
}

// Reply is what the core hands back to its callers.
type Reply struct {
	Response    string  `json:"response"`
	Intent      string  `json:"intent"`
	Probability float64 `json:"probability"`
}

func (t Turn) ToReply() Reply {
	return Reply{Response: t.Reply, Intent: t.Intent, Probability: t.Probability()}
}
