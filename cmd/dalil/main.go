package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/catalog"
	"github.com/dalil-app/dalil/gemini"
	"github.com/dalil-app/dalil/goquery"
	"github.com/dalil-app/dalil/htmltomarkdown"
	dalilhttp "github.com/dalil-app/dalil/http"
	"github.com/dalil-app/dalil/index"
	"github.com/dalil-app/dalil/rod"
	dalilslog "github.com/dalil-app/dalil/slog"
	"github.com/dalil-app/dalil/sqlite"
	"github.com/dalil-app/dalil/trafilatura"
	"github.com/dalil-app/dalil/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Config path. Set before calling Run().
	ConfigPath string

	// SQLite database backing the catalog store.
	DB *sqlite.DB

	// Catalog orchestrator, exposed for end-to-end testing.
	Catalog *catalog.Service
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dalil"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'dalil --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	config, err := yaml.Load(m.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config at %q: %w", m.ConfigPath, err)
	}

	logger := newLogger(stderr, config.LogLevel)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DALIL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	store := sqlite.NewCatalogStore(m.DB)
	engine := index.NewEngine()

	var cache dalil.Cache
	if *config.CacheEnabled {
		cache = catalog.NewMemoryCache(config.CacheTTL())
	}

	extractor := goquery.NewExtractor(
		goquery.WithFallback(trafilatura.NewExtractor()),
		goquery.WithConverter(htmltomarkdown.NewConverter()),
	)

	m.Catalog = &catalog.Service{
		Engine:          engine,
		Static:          dalilhttp.NewRetryFetcher(dalilhttp.NewFetcher(), logger),
		Policy:          dalilhttp.NewRobotsPolicy(nil),
		Extractor:       extractor,
		Cache:           cache,
		Store:           store,
		Sitemaps:        dalilslog.NewLoggingSitemapService(dalilhttp.NewSitemapService(nil), logger),
		Logger:          logger,
		MaxConcurrent:   config.MaxConcurrent,
		DefaultLanguage: config.DefaultLanguage,
	}

	// Re-seed the in-memory index from persisted records.
	records, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(records) > 0 {
		if err := m.Catalog.Initialize(ctx, records); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	deps.Store = store
	deps.Engine = engine
	deps.Catalog = m.Catalog

	if needsDynamicFetcher(cli, cmd) {
		fetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return err
		}
		defer fetcher.Close()
		m.Catalog.Dynamic = rod.NewLoggingFetcher(fetcher, logger)
	}

	if cmd == "ask" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Responder = &dalil.ResponderChain{
			Responders: []dalil.Responder{gemini.NewResponder(client, engine)},
			Logger:     logger,
		}
	}

	return kongCtx.Run(deps)
}

// needsDynamicFetcher reports whether the parsed command asked for the
// browser-rendered fetch path.
func needsDynamicFetcher(cli *CLI, cmd string) bool {
	switch cmd {
	case "scrape":
		return cli.Scrape.Dynamic
	case "batch":
		return cli.Batch.Dynamic
	case "ingest":
		return cli.Ingest.Dynamic
	}
	return false
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultDBPath() string {
	if path := os.Getenv("DALIL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "dalil.db"
	}
	dir := filepath.Join(home, ".dalil")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "dalil.db")
}

func defaultConfigPath() string {
	if path := os.Getenv("DALIL_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "dalil.yaml"
	}
	return filepath.Join(home, ".dalil", "dalil.yaml")
}
