// Package domain contains the core concepts of the pizzeria responder.
// This file defines intents and the catalog they are looked up in.
// A Catalog is immutable once built: every accessor hands out copies.
package domain

import "encoding/json"

// Intent tags the composer gives a dedicated treatment to.
const (
	IntentGreeting  = "cumprimento"
	IntentOrder     = "compra"
	IntentMenu      = "itens_disponiveis"
	IntentPrices    = "precos"
	IntentDelivery  = "tempo_entrega"
	IntentThanks    = "agradecimento"
	IntentComplaint = "reclamacao"
	IntentFarewell  = "despedida"

	// IntentUnknown is reported when neither similarity nor keywords recognise a message.
	IntentUnknown = "unknown"
)

// IntentDefinition is one entry of the catalog: example phrases and candidate replies.
type IntentDefinition struct {
	Tag       string   `json:"tag" yaml:"tag" validate:"required"`
	Patterns  []string `json:"patterns" yaml:"patterns"`
	Responses []string `json:"responses" yaml:"responses"`
}

// CatalogDocument is the serialized shape of a catalog ({"intents": [...]}).
type CatalogDocument struct {
	Intents []IntentDefinition `json:"intents" yaml:"intents" validate:"required,min=1,dive"`
}

// Catalog is an ordered, read-only list of intents.
// Tags are not required to be unique: Lookup returns the first match.
type Catalog struct {
	intents []IntentDefinition
}

func NewCatalog(intents []IntentDefinition) Catalog {
	return Catalog{intents: cloneIntents(intents)}
}

// Intents returns a copy of the catalog entries in declaration order.
func (c Catalog) Intents() []IntentDefinition {
	return cloneIntents(c.intents)
}

func (c Catalog) Len() int {
	return len(c.intents)
}

// Lookup returns the first intent declared with the given tag.
func (c Catalog) Lookup(tag string) (IntentDefinition, bool) {
	for _, intent := range c.intents {
		if intent.Tag == tag {
			return cloneIntent(intent), true
		}
	}
	return IntentDefinition{}, false
}

// Responses returns the candidate replies of the first intent with this tag.
// It is empty when the tag is unknown or the intent has no replies.
func (c Catalog) Responses(tag string) []string {
	intent, ok := c.Lookup(tag)
	if !ok {
		return nil
	}
	return intent.Responses
}

func (c Catalog) Document() CatalogDocument {
	return CatalogDocument{Intents: c.Intents()}
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	doc := c.Document()
	if doc.Intents == nil {
		doc.Intents = []IntentDefinition{}
	}
	return json.Marshal(doc)
}

func cloneIntents(intents []IntentDefinition) []IntentDefinition {
	if intents == nil {
		return nil
	}
	out := make([]IntentDefinition, len(intents))
	for i, intent := range intents {
		out[i] = cloneIntent(intent)
	}
	return out
}

func cloneIntent(intent IntentDefinition) IntentDefinition {
	return IntentDefinition{
		Tag:       intent.Tag,
		Patterns:  append([]string(nil), intent.Patterns...),
		Responses: append([]string(nil), intent.Responses...),
	}
}
