package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/moodreel/moodreel/internal/config"
	"github.com/moodreel/moodreel/internal/gemini"
	"github.com/moodreel/moodreel/internal/intent"
	"github.com/moodreel/moodreel/internal/log"
	"github.com/moodreel/moodreel/internal/service"
	"github.com/moodreel/moodreel/internal/store"
	"github.com/moodreel/moodreel/internal/tmdb"
	"github.com/moodreel/moodreel/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("moodreel %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("moodreel requires an interactive terminal")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting moodreel", "version", Version)

	// Provider clients
	catalog := tmdb.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.BearerToken, cfg.Catalog.APIKey, cfg.Catalog.Language, logger)
	generator := gemini.NewClient(cfg.Extractor.BaseURL, cfg.Extractor.APIKey, cfg.Extractor.Model, logger)
	extractor := intent.NewExtractor(generator, logger)

	// Search history store; a storage failure degrades to memory-only
	historyStore, err := store.NewHistoryStore(cfg.DataPath())
	if err != nil {
		logger.Warn("history db unavailable, using in-memory history", "error", err)
		historyStore, _ = store.NewHistoryStore("")
	}
	defer historyStore.Close()

	// Services
	session := service.NewSession()
	mapper := service.NewMapper(catalog, session, logger)
	historySvc := service.NewHistoryService(historyStore, logger)
	missing := cfg.MissingCredentials()
	searchSvc := service.NewSearchService(extractor, catalog, mapper, session, historySvc, missing, logger)

	if len(missing) > 0 {
		logger.Warn("missing credentials, searches will be rejected", "missing", missing)
	}

	// Preload genres only when the catalog call path is configured
	preloadGenres := len(cfg.MissingCatalogCredentials()) == 0

	model := tui.NewModel(searchSvc, historySvc, cfg.UI.HistoryLines, preloadGenres)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
