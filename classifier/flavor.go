package classifier

import (
	"pizza-bot/matcher"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FlavorAliases lists canonical flavors with their usual misspellings.
// The order is significant: when several aliases occur in a text the
// earliest-declared one is reported, so base names shadow their variants.
var FlavorAliases = []string{
	"calabresa", "calabreza", "calabresa simples", "calabresa tradicional", "calabresa com cebola",
	"margherita", "marguerita", "margheritta", "margerita",
	"pepperoni", "peperoni", "peperonni", "peperone",
	"portuguesa", "portugueza", "portugesa", "portugesa tradicional",
	"quatro queijos", "4 queijos", "quatro queijo", "quatro quejo", "quatro queijos especial",
	"frango catupiry", "frango com catupiry", "frango catupiri", "frango catupry", "frango catupiry especial",
}

// FlavorExtractor detects the pizza flavor mentioned in a sentence.
type FlavorExtractor struct {
	aliases *matcher.Matcher
}

func NewFlavorExtractor(aliases []string) (*FlavorExtractor, error) {
	m, err := matcher.New(aliases)
	if err != nil {
		return nil, err
	}
	return &FlavorExtractor{aliases: m}, nil
}

func DefaultFlavorExtractor() *FlavorExtractor {
	return &FlavorExtractor{aliases: matcher.MustNew(FlavorAliases)}
}

// Extract returns the earliest-declared alias contained in text, case-insensitively.
func (f *FlavorExtractor) Extract(text string) (string, bool) {
	return f.aliases.First(text)
}

// TitleCase renders a flavor the way it is quoted back to the customer.
// A Caser keeps state, hence one per call.
func TitleCase(flavor string) string {
	return cases.Title(language.BrazilianPortuguese).String(flavor)
}
