package classifier

import (
	"pizza-bot/domain"
	"pizza-bot/nlp"
)

// LowConfidenceThreshold is the similarity under which the keyword fallback takes over.
const LowConfidenceThreshold = 0.1

type intentPatterns struct {
	tag      string
	patterns []nlp.TokenSet
}

// Predictor scores a message against every pattern of the catalog.
// Pattern token sets are computed once; Predict only reads them.
type Predictor struct {
	preprocessor *nlp.Preprocessor
	fallback     *KeywordFallback
	intents      []intentPatterns
	threshold    float64
}

func NewPredictor(catalog domain.Catalog, preprocessor *nlp.Preprocessor, fallback *KeywordFallback) *Predictor {
	intents := make([]intentPatterns, 0, catalog.Len())
	for _, intent := range catalog.Intents() {
		sets := make([]nlp.TokenSet, 0, len(intent.Patterns))
		for _, pattern := range intent.Patterns {
			sets = append(sets, nlp.NewTokenSet(preprocessor.Preprocess(pattern)))
		}
		intents = append(intents, intentPatterns{tag: intent.Tag, patterns: sets})
	}
	return &Predictor{
		preprocessor: preprocessor,
		fallback:     fallback,
		intents:      intents,
		threshold:    LowConfidenceThreshold,
	}
}

// Predict returns the intent whose closest pattern overlaps the message the most.
// Ties keep the earliest intent. Below the threshold, the keyword fallback result
// is returned instead, even when it is unknown.
func (p *Predictor) Predict(message string) domain.Classification {
	tokens := nlp.NewTokenSet(p.preprocessor.Preprocess(message))

	best := domain.UnknownClassification()
	for _, intent := range p.intents {
		maxSimilarity := 0.0
		for _, pattern := range intent.patterns {
			if s := nlp.JaccardSets(tokens, pattern); s > maxSimilarity {
				maxSimilarity = s
			}
		}
		if maxSimilarity > best.Score {
			best = domain.Classification{Intent: intent.tag, Score: maxSimilarity, Source: domain.SourceSimilarity}
		}
	}

	if best.Score < p.threshold {
		return p.fallback.Match(message)
	}
	return best
}
