package nlp

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var sentenceBoundaryRe = regexp.MustCompile(`[.!?]+`)

// SplitSentences cuts a message on runs of '.', '!' and '?'.
// Fragments are trimmed and empty ones dropped; when nothing survives the
// whole message is returned untouched as the only sentence.
func SplitSentences(message string) []string {
	fragments := lo.FilterMap(sentenceBoundaryRe.Split(message, -1), func(s string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(s)
		return trimmed, trimmed != ""
	})
	if len(fragments) == 0 {
		return []string{message}
	}
	return fragments
}
