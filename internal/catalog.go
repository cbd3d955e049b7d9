// Package internal holds the wiring shared by the binaries.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"pizza-bot/domain"
	"pizza-bot/errors"
	"pizza-bot/infrastructure/storage"
	"pizza-bot/services"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const (
	SourceFile   = "file"
	SourceBadger = "badger"
)

type CatalogSettings struct {
	Source         string
	Path           string
	BadgerFilepath string
}

// LoadCatalog reads and validates the catalog once. A Badger store is opened
// read-only and released before returning.
func LoadCatalog(ctx context.Context, settings CatalogSettings, requiredIntents []string, log *slog.Logger) (domain.Catalog, error) {
	switch strings.ToLower(settings.Source) {
	case SourceFile, "":
		provider := storage.NewFileCatalogProvider(settings.Path, log)
		return services.NewCatalogService(provider, log, requiredIntents).Load(ctx)
	case SourceBadger:
		db, err := badger.Open(badger.DefaultOptions(settings.BadgerFilepath).
			WithReadOnly(true).
			WithBypassLockGuard(true).
			WithLoggingLevel(badger.WARNING))
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()
		provider := storage.NewBadgerCatalogRepository(db, log)
		return services.NewCatalogService(provider, log, requiredIntents).Load(ctx)
	default:
		return domain.Catalog{}, fmt.Errorf("%w: %q", errors.ErrUnknownCatalogSource, settings.Source)
	}
}

// ParseRequiredIntents splits a "a|b|c" list, ignoring blanks.
func ParseRequiredIntents(raw string) []string {
	return lo.FilterMap(strings.Split(raw, "|"), func(s string, _ int) (string, bool) {
		tag := strings.TrimSpace(s)
		return tag, tag != ""
	})
}
