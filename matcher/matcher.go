package matcher

import (
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Matcher finds which entries of an ordered pattern list occur as substrings of a text.
// Patterns keep their declaration rank so callers can resolve overlaps by priority.
// A Matcher is read-only after construction and safe for concurrent use.
type Matcher struct {
	machine *goahocorasick.Machine
	rank    map[string]int
	size    int
}

// New lower-cases the patterns and builds the Aho-Corasick automaton.
// Empty and repeated patterns are ignored; the first declaration keeps its rank.
func New(patterns []string) (*Matcher, error) {
	rank := make(map[string]int, len(patterns))
	for i, p := range patterns {
		p = strings.ToLower(p)
		if p == "" {
			continue
		}
		if _, seen := rank[p]; !seen {
			rank[p] = i
		}
	}
	m := &Matcher{rank: rank, size: len(rank)}
	if len(rank) == 0 {
		return m, nil
	}

	keywords := lo.Keys(rank)
	sort.Strings(keywords)
	runes := lo.Map(keywords, func(k string, _ int) []rune { return []rune(k) })

	machine := new(goahocorasick.Machine)
	if err := machine.Build(runes); err != nil {
		return nil, err
	}
	m.machine = machine
	return m, nil
}

// MustNew is New for the built-in tables, which are known to be valid.
func MustNew(patterns []string) *Matcher {
	m, err := New(patterns)
	if err != nil {
		panic(err)
	}
	return m
}

// Len is the number of distinct patterns.
func (m *Matcher) Len() int {
	return m.size
}

// Matches returns the distinct patterns found in text, ordered by declaration rank.
func (m *Matcher) Matches(text string) []string {
	if m.machine == nil || text == "" {
		return nil
	}
	terms := m.machine.MultiPatternSearch([]rune(strings.ToLower(text)), false)
	if len(terms) == 0 {
		return nil
	}
	found := lo.Uniq(lo.Map(terms, func(term *goahocorasick.Term, _ int) string {
		return string(term.Word)
	}))
	sort.SliceStable(found, func(i, j int) bool { return m.rank[found[i]] < m.rank[found[j]] })
	return found
}

// Count is the number of distinct patterns contained in text.
func (m *Matcher) Count(text string) int {
	return len(m.Matches(text))
}

// First returns the earliest-declared pattern contained in text.
func (m *Matcher) First(text string) (string, bool) {
	found := m.Matches(text)
	if len(found) == 0 {
		return "", false
	}
	return found[0], true
}
