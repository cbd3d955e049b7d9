//go:generate go run go.uber.org/mock/mockgen -source=catalog_service.go -destination=../mocks/mock_catalog_provider.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"pizza-bot/domain"
	"pizza-bot/errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// DefaultRequiredIntents are the tags the composer answers from the catalog in dedicated rules.
var DefaultRequiredIntents = []string{domain.IntentGreeting, domain.IntentOrder, domain.IntentMenu}

// CatalogProvider loads the intent catalog from wherever it is stored.
type CatalogProvider interface {
	Load(ctx context.Context) (domain.Catalog, error)
}

type CatalogService struct {
	provider        CatalogProvider
	log             *slog.Logger
	requiredIntents []string
}

func NewCatalogService(provider CatalogProvider, log *slog.Logger, requiredIntents []string) *CatalogService {
	return &CatalogService{provider: provider, log: log, requiredIntents: requiredIntents}
}

// Load fetches the catalog once and refuses to hand out one the responder cannot serve:
// no intents, an intent without tag, or a required intent without responses.
// Other intents without responses are kept and answered with the apology.
func (s *CatalogService) Load(ctx context.Context) (domain.Catalog, error) {
	catalog, err := s.provider.Load(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("loading catalog: %w", err)
	}
	if err = Validate(catalog, s.requiredIntents); err != nil {
		return domain.Catalog{}, err
	}

	for _, intent := range catalog.Intents() {
		if len(intent.Responses) == 0 {
			s.log.Warn("Intent has no responses, apology will be used", "tag", intent.Tag)
		}
	}
	s.log.Info("Catalog loaded", "intents", catalog.Len(),
		"tags", lo.Uniq(lo.Map(catalog.Intents(), func(i domain.IntentDefinition, _ int) string { return i.Tag })))
	return catalog, nil
}

// Validate checks the structure of a catalog and the responses of the required intents.
func Validate(catalog domain.Catalog, requiredIntents []string) error {
	if catalog.Len() == 0 {
		return errors.ErrCatalogEmpty
	}
	if err := validate.Struct(catalog.Document()); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrCatalogMalformed, err)
	}
	for _, tag := range requiredIntents {
		intent, ok := catalog.Lookup(tag)
		if !ok {
			continue
		}
		if len(intent.Responses) == 0 {
			return fmt.Errorf("%w: %s", errors.ErrIntentWithoutResponses, tag)
		}
	}
	return nil
}
