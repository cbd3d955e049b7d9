package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"pizza-bot/domain"
	"pizza-bot/infrastructure/storage"
	"pizza-bot/internal"
	"pizza-bot/services"
	"strconv"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	LogLevel        string `env:"LOG_LEVEL,default=INFO"`
	CatalogPath     string `env:"CATALOG_PATH,default=configs/intents.json"`
	BadgerFilepath  string `env:"BADGER_FILEPATH,default=data/catalog"`
	RequiredIntents string `env:"REQUIRED_INTENTS,default=cumprimento|compra|itens_disponiveis"`
}

const usage = `Usage: catalog <command> [flags]

Commands:
  import    validate a JSON/YAML catalog and store it in Badger
  list      print the catalog stored in Badger
  validate  validate a JSON/YAML catalog without storing it
`

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed).Render("Error:"), err)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return exitConfig, nil
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	src := fs.String("src", config.CatalogPath, "Path to the JSON/YAML catalog")
	dbPath := fs.String("db", config.BadgerFilepath, "Path to badger DB")
	if err := fs.Parse(args[1:]); err != nil {
		return exitConfig, err
	}

	ctx := context.Background()
	required := internal.ParseRequiredIntents(config.RequiredIntents)

	switch args[0] {
	case "validate":
		catalog, err := loadFile(ctx, *src, required, log)
		if err != nil {
			return exitRuntime, err
		}
		fmt.Printf("%s %s (%d intents)\n", color.New(color.FgGreen).Render("OK"), *src, catalog.Len())
		return exitOK, nil
	case "import":
		catalog, err := loadFile(ctx, *src, required, log)
		if err != nil {
			return exitRuntime, err
		}
		if err = importCatalog(ctx, *dbPath, catalog, log); err != nil {
			return exitRuntime, err
		}
		fmt.Printf("%s %d intents imported into %s\n", color.New(color.FgGreen).Render("OK"), catalog.Len(), *dbPath)
		return exitOK, nil
	case "list":
		catalog, err := internal.LoadCatalog(ctx, internal.CatalogSettings{
			Source:         internal.SourceBadger,
			BadgerFilepath: *dbPath,
		}, nil, log)
		if err != nil {
			return exitRuntime, err
		}
		printCatalog(os.Stdout, catalog)
		return exitOK, nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return exitConfig, fmt.Errorf("unknown command %q", args[0])
	}
}

func loadFile(ctx context.Context, path string, required []string, log *slog.Logger) (domain.Catalog, error) {
	provider := storage.NewFileCatalogProvider(path, log)
	return services.NewCatalogService(provider, log, required).Load(ctx)
}

func importCatalog(ctx context.Context, dbPath string, catalog domain.Catalog, log *slog.Logger) error {
	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	return storage.NewBadgerCatalogRepository(db, log).Save(ctx, catalog)
}

func printCatalog(w io.Writer, catalog domain.Catalog) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Tag", "Patterns", "Responses", "First response"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for i, intent := range catalog.Intents() {
		first := "-"
		if len(intent.Responses) > 0 {
			first = truncate(intent.Responses[0], 60)
		}
		table.Append([]string{
			strconv.Itoa(i),
			intent.Tag,
			strconv.Itoa(len(intent.Patterns)),
			strconv.Itoa(len(intent.Responses)),
			first,
		})
	}
	table.Render()
}

func truncate(s string, n int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n-3]) + "..."
}
