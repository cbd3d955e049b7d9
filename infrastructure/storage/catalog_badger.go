package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"pizza-bot/domain"
	"pizza-bot/errors"

	"github.com/dgraph-io/badger/v4"
)

const intentKeyPrefix = "intent:"

// BadgerCatalogRepository keeps the catalog in BadgerDB, one key per intent.
// Keys are zero-padded positions so a prefix scan returns the declaration order.
type BadgerCatalogRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerCatalogRepository(db *badger.DB, log *slog.Logger) *BadgerCatalogRepository {
	return &BadgerCatalogRepository{db: db, log: log}
}

func intentKey(position int) []byte {
	return []byte(fmt.Sprintf("%s%05d", intentKeyPrefix, position))
}

// Save replaces the stored catalog atomically: stale intents are removed in the same transaction.
func (r *BadgerCatalogRepository) Save(ctx context.Context, catalog domain.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	values := make([][]byte, 0, catalog.Len())
	for _, intent := range catalog.Intents() {
		data, err := json.Marshal(intent)
		if err != nil {
			return fmt.Errorf("failed to marshal intent %q: %w", intent.Tag, err)
		}
		values = append(values, data)
	}

	prefix := []byte(intentKeyPrefix)
	err := r.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		var stale [][]byte
		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		for i, value := range values {
			if err := txn.Set(intentKey(i), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	r.log.Info("Catalog saved", "intents", len(values))
	return nil
}

// Load scans every intent key back in order.
func (r *BadgerCatalogRepository) Load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}

	var intents []domain.IntentDefinition
	prefix := []byte(intentKeyPrefix)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var intent domain.IntentDefinition
				if err := json.Unmarshal(v, &intent); err != nil {
					return fmt.Errorf("%w: key %s: %v", errors.ErrCatalogMalformed, item.Key(), err)
				}
				intents = append(intents, intent)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}

	if len(intents) == 0 {
		return domain.Catalog{}, fmt.Errorf("%w: no intent stored in badger", errors.ErrCatalogMissing)
	}
	return domain.NewCatalog(intents), nil
}
