package storage

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"pizza-bot/domain"
	"pizza-bot/errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"gopkg.in/yaml.v3"
)

type catalogFormat int

const (
	formatJSON catalogFormat = iota
	formatYAML
)

// FileCatalogProvider reads the intent catalog from a JSON or YAML document
// shaped like {"intents": [{"tag", "patterns", "responses"}]}.
type FileCatalogProvider struct {
	path string
	log  *slog.Logger
}

func NewFileCatalogProvider(path string, log *slog.Logger) *FileCatalogProvider {
	return &FileCatalogProvider{path: path, log: log}
}

// Load reads and decodes the whole file. The format comes from the extension,
// or from the content when the extension says nothing.
func (p *FileCatalogProvider) Load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		if goerrors.Is(err, os.ErrNotExist) {
			return domain.Catalog{}, fmt.Errorf("%w: %s", errors.ErrCatalogMissing, p.path)
		}
		return domain.Catalog{}, fmt.Errorf("reading %s: %w", p.path, err)
	}

	format, err := detectFormat(p.path, data)
	if err != nil {
		return domain.Catalog{}, err
	}

	doc, err := decode(format, data)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %s: %v", errors.ErrCatalogMalformed, p.path, err)
	}

	p.log.Debug("Catalog file decoded", "path", p.path, "bytes", len(data), "intents", len(doc.Intents))
	return domain.NewCatalog(doc.Intents), nil
}

func detectFormat(path string, data []byte) (catalogFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}

	mime := mimetype.Detect(data)
	if mime.Is("application/json") {
		return formatJSON, nil
	}
	return 0, fmt.Errorf("%w: %s (%s)", errors.ErrUnsupportedCatalogFormat, path, mime.String())
}

func decode(format catalogFormat, data []byte) (domain.CatalogDocument, error) {
	var doc domain.CatalogDocument
	switch format {
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, err
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, err
		}
	}
	return doc, nil
}
