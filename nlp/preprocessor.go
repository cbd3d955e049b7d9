package nlp

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/blugelabs/bluge/analysis"
	"github.com/blugelabs/bluge/analysis/tokenizer"
)

// minTokenLength is exclusive: tokens of this many runes or fewer are dropped.
const minTokenLength = 2

var punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Preprocessor turns free text into the tokens used for similarity scoring.
// It is safe for concurrent use: the stop-word set is never written after construction.
type Preprocessor struct {
	tokenizer analysis.Tokenizer
	stopWords map[string]struct{}
}

func NewPreprocessor(stopWords map[string]struct{}) *Preprocessor {
	if stopWords == nil {
		stopWords = DefaultStopWords()
	}
	return &Preprocessor{
		tokenizer: tokenizer.NewUnicodeTokenizer(),
		stopWords: stopWords,
	}
}

// Preprocess lower-cases text, removes punctuation, splits it on word boundaries
// and drops stop words and short tokens. Order is kept but callers treat the
// result as a set.
func (p *Preprocessor) Preprocess(text string) []string {
	cleaned := punctuationRe.ReplaceAllString(strings.ToLower(text), "")
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}
	stream := p.tokenizer.Tokenize([]byte(cleaned))
	out := make([]string, 0, len(stream))
	for _, tok := range stream {
		word := string(tok.Term)
		if _, isStop := p.stopWords[word]; isStop {
			continue
		}
		if utf8.RuneCountInString(word) <= minTokenLength {
			continue
		}
		out = append(out, word)
	}
	return out
}

// IsStopWord reports whether word (already lower-cased) is filtered out.
func (p *Preprocessor) IsStopWord(word string) bool {
	_, ok := p.stopWords[word]
	return ok
}
