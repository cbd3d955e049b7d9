package services

import (
	"fmt"
	"log/slog"
	"pizza-bot/classifier"
	"pizza-bot/domain"
	"pizza-bot/nlp"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	ApologyReply      = "Desculpe, não entendi muito bem. Pode me falar mais sobre o que você precisa?"
	NotUnderstoodText = "Desculpe, não entendi. Pode repetir?"
	replySeparator    = "\n\n"
)

// OrderConfirmation is the reply given when an order names a known flavor.
func OrderConfirmation(flavor string) string {
	return fmt.Sprintf("Pedido anotado! Sua pizza de %s está sendo preparada. Deseja adicionar algo mais?",
		classifier.TitleCase(flavor))
}

type IntentPredictor interface {
	Predict(message string) domain.Classification
}

type FlavorExtractor interface {
	Extract(text string) (string, bool)
}

// Responder turns a customer message into a reply. It keeps no state between calls:
// the catalog and classifiers are read-only, the Picker is concurrency-safe.
type Responder struct {
	log       *slog.Logger
	catalog   domain.Catalog
	predictor IntentPredictor
	flavors   FlavorExtractor
	picker    Picker
}

func NewResponder(log *slog.Logger, catalog domain.Catalog, predictor IntentPredictor,
	flavors FlavorExtractor, picker Picker) *Responder {
	if picker == nil {
		picker = NewRandomPicker()
	}
	return &Responder{log: log, catalog: catalog, predictor: predictor, flavors: flavors, picker: picker}
}

// NewDefaultResponder wires the built-in preprocessor, keyword table and flavor list.
func NewDefaultResponder(log *slog.Logger, catalog domain.Catalog, picker Picker) *Responder {
	predictor := classifier.NewPredictor(catalog, nlp.NewPreprocessor(nil), classifier.DefaultKeywordFallback())
	return NewResponder(log, catalog, predictor, classifier.DefaultFlavorExtractor(), picker)
}

// Catalog exposes the catalog the responder answers from.
func (r *Responder) Catalog() domain.Catalog {
	return r.catalog
}

// Respond classifies every sentence of message, builds one reply per sentence
// and merges them. The dominant intent is the best scoring sentence, the earliest on ties.
func (r *Responder) Respond(message string) domain.Turn {
	turn := domain.Turn{
		ID:       uuid.New(),
		Message:  message,
		Language: whatlanggo.Detect(message).Lang.Iso6391(),
		Intent:   domain.IntentUnknown,
	}

	var replies []string
	greeted := false
	for _, sentence := range nlp.SplitSentences(message) {
		if sentence == "" {
			continue
		}
		result := domain.SentenceResult{
			Sentence:       sentence,
			Classification: r.predictor.Predict(sentence),
		}
		if flavor, ok := r.flavors.Extract(sentence); ok {
			result.Flavor = flavor
		}

		reply, confirmed := r.compose(result, greeted)
		if confirmed {
			turn.OrderConfirmed = true
		}
		if reply != "" {
			replies = append(replies, reply)
			if result.Classification.Intent == domain.IntentGreeting {
				greeted = true
			}
		}
		result.Reply = reply
		turn.Sentences = append(turn.Sentences, result)
	}

	turn.Reply = mergeReplies(replies)
	if best, ok := dominant(turn.Sentences); ok {
		turn.Intent = best.Intent
		turn.Score = best.Score
	}

	r.log.Debug("Message answered",
		"turn_id", turn.ID,
		"lang", turn.Language,
		"sentences", len(turn.Sentences),
		"intent", turn.Intent,
		"probability", turn.Probability(),
		"order_confirmed", turn.OrderConfirmed)
	return turn
}

// compose applies the per-sentence rules, first match wins.
// An empty reply means the sentence contributes nothing: a greeting is
// answered once per message, wherever it appears.
// Menu questions and orders without flavor fall through to a catalog reply.
func (r *Responder) compose(result domain.SentenceResult, greeted bool) (string, bool) {
	intent := result.Classification.Intent
	switch {
	case intent == domain.IntentOrder && result.Flavor != "":
		return OrderConfirmation(result.Flavor), true
	case intent == domain.IntentGreeting && greeted:
		return "", false
	default:
		return r.pick(intent), false
	}
}

// pick draws one catalog response for tag, or the apology when there is none.
func (r *Responder) pick(tag string) string {
	responses := r.catalog.Responses(tag)
	if len(responses) == 0 {
		return ApologyReply
	}
	return responses[r.picker.IntN(len(responses))]
}

// mergeReplies removes exact duplicates, keeping first occurrences, and joins the rest.
func mergeReplies(replies []string) string {
	unique := lo.Uniq(replies)
	if len(unique) == 0 {
		return NotUnderstoodText
	}
	return strings.Join(unique, replySeparator)
}

// dominant returns the classification with the strictly highest score, the earliest on ties.
func dominant(sentences []domain.SentenceResult) (domain.Classification, bool) {
	if len(sentences) == 0 {
		return domain.Classification{}, false
	}
	best := sentences[0].Classification
	for _, s := range sentences[1:] {
		if s.Classification.Score > best.Score {
			best = s.Classification
		}
	}
	return best, true
}
