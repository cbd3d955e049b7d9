package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"pizza-bot/domain"
	"pizza-bot/errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const jsonCatalog = `{
  "intents": [
    {"tag": "cumprimento", "patterns": ["Olá", "Bom dia"], "responses": ["Olá! Como posso ajudar?"]},
    {"tag": "compra", "patterns": ["Quero uma pizza"], "responses": ["Qual sabor você deseja?"]}
  ]
}`

const yamlCatalog = `intents:
  - tag: cumprimento
    patterns: ["Olá", "Bom dia"]
    responses: ["Olá! Como posso ajudar?"]
  - tag: compra
    patterns: ["Quero uma pizza"]
    responses: ["Qual sabor você deseja?"]
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// setupTestDB initializes a temporary Badger instance for testing
func setupTestDB(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestFileCatalogProvider_Load(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctx := context.Background()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "JSON by extension", file: "intents.json", content: jsonCatalog},
		{name: "YAML by extension", file: "intents.yaml", content: yamlCatalog},
		{name: "YML by extension", file: "intents.yml", content: yamlCatalog},
		{name: "JSON sniffed from content", file: "intents", content: jsonCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			provider := NewFileCatalogProvider(writeFile(t, tt.file, tt.content), log)

			catalog, err := provider.Load(ctx)

			req.NoError(err)
			req.Equal(2, catalog.Len())
			greeting, ok := catalog.Lookup(domain.IntentGreeting)
			req.True(ok)
			req.Equal([]string{"Olá", "Bom dia"}, greeting.Patterns)
			req.Equal([]string{"Qual sabor você deseja?"}, catalog.Responses(domain.IntentOrder))
		})
	}
}

func TestFileCatalogProvider_Errors(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		provider := NewFileCatalogProvider(filepath.Join(t.TempDir(), "nope.json"), log)
		_, err := provider.Load(ctx)
		require.ErrorIs(t, err, errors.ErrCatalogMissing)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		provider := NewFileCatalogProvider(writeFile(t, "intents.json", `{"intents": [`), log)
		_, err := provider.Load(ctx)
		require.ErrorIs(t, err, errors.ErrCatalogMalformed)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		provider := NewFileCatalogProvider(writeFile(t, "intents.yaml", "intents: 5"), log)
		_, err := provider.Load(ctx)
		require.ErrorIs(t, err, errors.ErrCatalogMalformed)
	})

	t.Run("unknown format", func(t *testing.T) {
		provider := NewFileCatalogProvider(writeFile(t, "intents.txt", "cumprimento: olá"), log)
		_, err := provider.Load(ctx)
		require.ErrorIs(t, err, errors.ErrUnsupportedCatalogFormat)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		provider := NewFileCatalogProvider(writeFile(t, "intents.json", jsonCatalog), log)
		_, err := provider.Load(cancelled)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestBadgerCatalogRepository_SaveAndLoad(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewBadgerCatalogRepository(setupTestDB(t), logs.GetLoggerFromLevel(slog.LevelDebug))

	_, err := repo.Load(ctx)
	req.ErrorIs(err, errors.ErrCatalogMissing)

	first := domain.NewCatalog([]domain.IntentDefinition{
		{Tag: domain.IntentGreeting, Patterns: []string{"Olá"}, Responses: []string{"Oi!"}},
		{Tag: domain.IntentOrder, Patterns: []string{"Quero"}, Responses: []string{"Qual sabor?"}},
		{Tag: domain.IntentMenu, Patterns: []string{"Cardápio"}, Responses: []string{"Temos calabresa."}},
	})
	req.NoError(repo.Save(ctx, first))

	loaded, err := repo.Load(ctx)
	req.NoError(err)
	req.Equal(first.Intents(), loaded.Intents())

	// A smaller catalog must not leave the third intent behind
	second := domain.NewCatalog([]domain.IntentDefinition{
		{Tag: domain.IntentFarewell, Patterns: []string{"Tchau"}, Responses: []string{"Até logo!"}},
	})
	req.NoError(repo.Save(ctx, second))

	loaded, err = repo.Load(ctx)
	req.NoError(err)
	req.Equal(second.Intents(), loaded.Intents())
}

func TestBadgerCatalogRepository_KeepsOrderBeyondTenIntents(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewBadgerCatalogRepository(setupTestDB(t), logs.GetLoggerFromLevel(slog.LevelDebug))

	var intents []domain.IntentDefinition
	for i := 0; i < 12; i++ {
		intents = append(intents, domain.IntentDefinition{Tag: string(rune('a' + i)), Responses: []string{"ok"}})
	}
	req.NoError(repo.Save(ctx, domain.NewCatalog(intents)))

	loaded, err := repo.Load(ctx)
	req.NoError(err)
	req.Equal(intents, loaded.Intents())
}

func TestBadgerCatalogRepository_MalformedValue(t *testing.T) {
	req := require.New(t)
	db := setupTestDB(t)
	req.NoError(db.Update(func(txn *badger.Txn) error {
		return txn.Set(intentKey(0), []byte("not json"))
	}))
	repo := NewBadgerCatalogRepository(db, logs.GetLoggerFromLevel(slog.LevelDebug))

	_, err := repo.Load(context.Background())
	req.ErrorIs(err, errors.ErrCatalogMalformed)
}
