package classifier

import (
	"math"
	"pizza-bot/domain"
	"pizza-bot/matcher"
	"strings"
)

const (
	keywordWeight   = 0.3
	keywordMaxScore = 0.8
)

// KeywordRule maps an intent to the substrings that trigger it.
type KeywordRule struct {
	Intent   string
	Triggers []string
}

// DefaultKeywordRules is the fallback table, in priority order.
var DefaultKeywordRules = []KeywordRule{
	{Intent: domain.IntentGreeting, Triggers: []string{"oi", "olá", "ola", "hello", "hey", "bom dia", "boa tarde", "boa noite"}},
	{Intent: domain.IntentOrder, Triggers: orderTriggers()},
	{Intent: domain.IntentMenu, Triggers: []string{"cardápio", "menu", "sabores", "pizzas", "opções", "tem"}},
	{Intent: domain.IntentPrices, Triggers: []string{"preço", "preco", "valor", "custa", "quanto"}},
	{Intent: domain.IntentDelivery, Triggers: []string{"tempo", "entrega", "demora", "prazo", "quando"}},
	{Intent: domain.IntentThanks, Triggers: []string{"obrigado", "obrigada", "valeu", "brigado", "thanks"}},
	{Intent: domain.IntentComplaint, Triggers: []string{"problema", "reclamação", "ruim", "fria", "errada", "atrasada"}},
	{Intent: domain.IntentFarewell, Triggers: []string{"tchau", "bye", "até logo", "falou", "até mais", "adeus"}},
}

func orderTriggers() []string {
	triggers := []string{"quero", "pedir", "comprar", "pedido", "vou querer"}
	triggers = append(triggers, FlavorAliases...)
	return append(triggers,
		"quero calabresa", "quero calabreza", "quero margherita", "quero marguerita",
		"quero pepperoni", "quero peperoni", "quero portuguesa", "quero portugueza",
		"quero quatro queijos", "quero 4 queijos", "quero frango catupiry",
		"quero frango catupiri", "quero frango com catupiry",
	)
}

type keywordIntent struct {
	intent   string
	triggers *matcher.Matcher
}

// KeywordFallback classifies by counting trigger substrings. It is the
// second opinion used when pattern similarity is too weak.
type KeywordFallback struct {
	rules []keywordIntent
}

func NewKeywordFallback(rules []KeywordRule) (*KeywordFallback, error) {
	out := make([]keywordIntent, 0, len(rules))
	for _, rule := range rules {
		m, err := matcher.New(rule.Triggers)
		if err != nil {
			return nil, err
		}
		out = append(out, keywordIntent{intent: rule.Intent, triggers: m})
	}
	return &KeywordFallback{rules: out}, nil
}

func DefaultKeywordFallback() *KeywordFallback {
	k, err := NewKeywordFallback(DefaultKeywordRules)
	if err != nil {
		panic(err)
	}
	return k
}

// Match scores every rule by the number of its triggers contained in message.
// The first rule reaching the highest count wins; the score is min(0.8, count*0.3).
func (k *KeywordFallback) Match(message string) domain.Classification {
	lowered := strings.ToLower(message)
	best := domain.UnknownClassification()
	bestCount := 0
	for _, rule := range k.rules {
		count := rule.triggers.Count(lowered)
		if count > bestCount {
			bestCount = count
			best.Intent = rule.intent
		}
	}
	if bestCount == 0 {
		return domain.UnknownClassification()
	}
	best.Score = math.Min(keywordMaxScore, float64(bestCount)*keywordWeight)
	best.Source = domain.SourceKeyword
	return best
}
