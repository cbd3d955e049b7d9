package classifier

import (
	"pizza-bot/domain"
	"pizza-bot/nlp"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCatalog() domain.Catalog {
	return domain.NewCatalog([]domain.IntentDefinition{
		{
			Tag:       domain.IntentGreeting,
			Patterns:  []string{"Olá", "Bom dia", "Boa noite"},
			Responses: []string{"Olá! Bem-vindo à Pizzaria do Will!"},
		},
		{
			Tag:       domain.IntentOrder,
			Patterns:  []string{"Quero uma pizza", "Gostaria de fazer um pedido"},
			Responses: []string{"Qual sabor você deseja?"},
		},
		{
			Tag:       domain.IntentMenu,
			Patterns:  []string{"pizza"},
			Responses: []string{"Temos calabresa, margherita e portuguesa."},
		},
		{
			Tag:       domain.IntentPrices,
			Patterns:  []string{"Qual o preço da pizza?"},
			Responses: []string{"A pizza grande custa R$ 45,00."},
		},
	})
}

func TestKeywordFallback_Match(t *testing.T) {
	k := DefaultKeywordFallback()

	tests := []struct {
		name   string
		input  string
		intent string
		score  float64
		source domain.ClassificationSource
	}{
		{name: "Price question", input: "quanto custa", intent: domain.IntentPrices, score: 0.6, source: domain.SourceKeyword},
		{name: "Single greeting", input: "Oi", intent: domain.IntentGreeting, score: 0.3, source: domain.SourceKeyword},
		{name: "Tie keeps the first rule", input: "oi quero", intent: domain.IntentGreeting, score: 0.3, source: domain.SourceKeyword},
		{name: "Score is capped", input: "quero pedir, comprar e fazer um pedido", intent: domain.IntentOrder, score: 0.8, source: domain.SourceKeyword},
		{name: "Substring inside a word still counts", input: "boi", intent: domain.IntentGreeting, score: 0.3, source: domain.SourceKeyword},
		{name: "Accented farewell", input: "Até logo!", intent: domain.IntentFarewell, score: 0.3, source: domain.SourceKeyword},
		{name: "Nothing found", input: "xyz", intent: domain.IntentUnknown, score: 0, source: domain.SourceNone},
		{name: "Empty message", input: "", intent: domain.IntentUnknown, score: 0, source: domain.SourceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := k.Match(tt.input)
			require.Equal(t, tt.intent, got.Intent)
			require.InDelta(t, tt.score, got.Score, 1e-9)
			require.Equal(t, tt.source, got.Source)
		})
	}
}

func TestFlavorExtractor_Extract(t *testing.T) {
	f := DefaultFlavorExtractor()

	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{name: "Base alias shadows its variant", input: "Quero uma Calabresa com cebola", expected: "calabresa", found: true},
		{name: "Digits", input: "uma de 4 QUEIJOS", expected: "4 queijos", found: true},
		{name: "Variant without shorter prefix", input: "frango com catupiry, por favor", expected: "frango com catupiry", found: true},
		{name: "Misspelling", input: "tem peperoni?", expected: "peperoni", found: true},
		{name: "Earliest declared wins over position", input: "portuguesa ou margherita", expected: "margherita", found: true},
		{name: "No flavor", input: "quero uma pizza", expected: "", found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.Extract(tt.input)
			require.Equal(t, tt.found, ok)
			require.Equal(t, tt.expected, got)

			// Idempotent
			again, okAgain := f.Extract(tt.input)
			require.Equal(t, got, again)
			require.Equal(t, ok, okAgain)
		})
	}
}

func TestTitleCase(t *testing.T) {
	req := require.New(t)
	req.Equal("Calabresa", TitleCase("calabresa"))
	req.Equal("Calabresa Com Cebola", TitleCase("calabresa com cebola"))
	req.Equal("4 Queijos", TitleCase("4 queijos"))
}

func TestPredictor_Predict(t *testing.T) {
	p := NewPredictor(testCatalog(), nlp.NewPreprocessor(nil), DefaultKeywordFallback())

	tests := []struct {
		name   string
		input  string
		intent string
		score  float64
		source domain.ClassificationSource
	}{
		{
			name:   "Pattern similarity",
			input:  "Oi, quero uma pizza de calabresa",
			intent: domain.IntentOrder,
			score:  2.0 / 3.0,
			source: domain.SourceSimilarity,
		},
		{
			name:   "Exact pattern",
			input:  "Bom dia!",
			intent: domain.IntentGreeting,
			score:  1,
			source: domain.SourceSimilarity,
		},
		{
			name:   "Keyword fallback when no pattern overlaps",
			input:  "quanto custa",
			intent: domain.IntentPrices,
			score:  0.6,
			source: domain.SourceKeyword,
		},
		{
			name:   "Keyword fallback under the threshold",
			input:  "pizza aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii valeu",
			intent: domain.IntentThanks,
			score:  0.3,
			source: domain.SourceKeyword,
		},
		{
			name:   "Overlapping triggers are counted separately",
			input:  "pizza aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii obrigado",
			intent: domain.IntentThanks,
			score:  0.6,
			source: domain.SourceKeyword,
		},
		{
			name:   "Unknown",
			input:  "xyz",
			intent: domain.IntentUnknown,
			score:  0,
			source: domain.SourceNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Predict(tt.input)
			require.Equal(t, tt.intent, got.Intent)
			require.InDelta(t, tt.score, got.Score, 1e-9)
			require.Equal(t, tt.source, got.Source)
		})
	}
}

func TestPredictor_TieKeepsEarliestIntent(t *testing.T) {
	req := require.New(t)
	catalog := domain.NewCatalog([]domain.IntentDefinition{
		{Tag: "primeiro", Patterns: []string{"pizza grande"}},
		{Tag: "segundo", Patterns: []string{"pizza grande"}},
	})
	p := NewPredictor(catalog, nlp.NewPreprocessor(nil), DefaultKeywordFallback())

	got := p.Predict("pizza grande")
	req.Equal("primeiro", got.Intent)
	req.Equal(1.0, got.Score)
}

func TestPredictor_EmptyCatalog(t *testing.T) {
	req := require.New(t)
	p := NewPredictor(domain.NewCatalog(nil), nlp.NewPreprocessor(nil), DefaultKeywordFallback())

	got := p.Predict("obrigado")
	req.Equal(domain.IntentThanks, got.Intent)
	req.InDelta(0.6, got.Score, 1e-9)
	req.Equal(domain.SourceKeyword, got.Source)

	got = p.Predict("valeu")
	req.Equal(domain.IntentThanks, got.Intent)
	req.InDelta(0.3, got.Score, 1e-9)
}
