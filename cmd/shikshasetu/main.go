// Package main is the ShikshaSetu CLI entry point.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pratham-bits/Shiksha-Setu/internal/catalog"
	"github.com/pratham-bits/Shiksha-Setu/internal/client"
	"github.com/pratham-bits/Shiksha-Setu/internal/config"
	"github.com/pratham-bits/Shiksha-Setu/internal/form"
	"github.com/pratham-bits/Shiksha-Setu/internal/keyword"
	"github.com/pratham-bits/Shiksha-Setu/internal/models"
	"github.com/pratham-bits/Shiksha-Setu/internal/notify"
	"github.com/pratham-bits/Shiksha-Setu/internal/render"
	"github.com/pratham-bits/Shiksha-Setu/internal/search"
	"github.com/pratham-bits/Shiksha-Setu/internal/server"
	"github.com/pratham-bits/Shiksha-Setu/internal/storage"
	"github.com/pratham-bits/Shiksha-Setu/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shikshasetu/config.yaml"

// loadConfig loads config from path. When path is the default, a config.yaml
// in the current directory takes precedence so running from the project dir
// picks up the project's config.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "get":
		runGet()
	case "download":
		runDownload()
	case "seed":
		runSeed()
	case "version", "--version", "-v":
		fmt.Printf("shikshasetu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()

	if cfg.Catalog.SeedPath != "" {
		syncer := catalog.NewSyncer(components.Store, components.KeywordIndex, logger)
		if err := syncer.SyncFile(watchCtx, cfg.Catalog.SeedPath); err != nil {
			logger.Fatal("Failed to load catalog seed", zap.Error(err))
		}
		if cfg.Catalog.Watch {
			w := catalog.NewWatcher(cfg.Catalog.SeedPath, syncer, logger)
			if err := w.Start(watchCtx); err != nil {
				logger.Fatal("Failed to start seed watcher", zap.Error(err))
			}
			defer w.Stop()
		}
	}

	srv := server.NewServer(components.Engine, components.Store, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// indicator prints the loading banner during an in-flight search.
type indicator struct{}

func (indicator) Show() { fmt.Println("Searching...") }
func (indicator) Hide() {}

// buttonProgress prints the progress label and restores the prompt.
type buttonProgress struct{}

func (buttonProgress) Begin(label string) func() {
	fmt.Println(label)
	return func() {}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverURL := fs.String("server", "", "server URL (overrides config)")
	docType := fs.String("type", "", "filter by document type")
	category := fs.String("category", "", "filter by category")
	interactive := fs.Bool("interactive", true, "prompt for per-result actions")
	_ = fs.Parse(os.Args[2:])

	// Flag input goes through the same resolver chain the search form uses,
	// so a field is found whichever attribute names it.
	searchForm := &form.Form{Fields: []form.Field{
		{ID: "query", Value: strings.TrimSpace(strings.Join(fs.Args(), " "))},
		{Name: "document_type", Value: *docType},
		{DataField: "category", Value: *category},
	}}
	resolver := form.NewResolver()
	query, _ := resolver.Resolve(searchForm, "query")

	cfg := clientConfig(*serverURL)
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	notifier := notify.NewNotifier(os.Stdout, 5*time.Second)
	c := client.NewClient(cfg.Client, indicator{}, logger)
	renderer := render.NewRenderer(os.Stdout)

	results, err := c.SubmitSearch(context.Background(), models.SearchQuery{
		Query:        query,
		DocumentType: resolver.ResolveOr(searchForm, "document_type", ""),
		Category:     resolver.ResolveOr(searchForm, "category", ""),
	})
	if err != nil {
		notifier.ShowAlert(notify.LevelError, client.UserMessage(err))
		os.Exit(1)
	}

	if err := renderer.Render(results); err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 || !*interactive {
		return
	}

	actions := &clientActions{
		client:      c,
		downloadDir: cfg.Client.DownloadDir,
		notifier:    notifier,
	}
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" || input == "quit" || input == "q" {
			return
		}
		if err := renderer.Dispatch(input, results, actions); err != nil {
			notifier.Toast(notify.LevelError, client.UserMessage(err))
		}
		fmt.Print("> ")
	}
}

// clientActions routes rendered-card actions to the API client.
type clientActions struct {
	client      *client.Client
	downloadDir string
	notifier    *notify.Notifier
}

func (a *clientActions) ViewDetails(id int64) error {
	doc, err := a.client.FetchDocument(context.Background(), id)
	if err != nil {
		return err
	}
	fmt.Println(client.BuildSummary(doc))
	return nil
}

func (a *clientActions) DownloadSummary(id int64) error {
	path, err := a.client.DownloadSummary(context.Background(), id, a.downloadDir, buttonProgress{})
	if err != nil {
		return err
	}
	a.notifier.Toast(notify.LevelSuccess, "Summary saved to "+path)
	return nil
}

func runGet() {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	serverURL := fs.String("server", "", "server URL (overrides config)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: shikshasetu get [flags] <document-id>")
		os.Exit(1)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Printf("Invalid document id: %s\n", fs.Arg(0))
		os.Exit(1)
	}

	cfg := clientConfig(*serverURL)
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	c := client.NewClient(cfg.Client, nil, logger)
	doc, err := c.FetchDocument(context.Background(), id)
	if err != nil {
		fmt.Fprintln(os.Stderr, client.UserMessage(err))
		os.Exit(1)
	}
	fmt.Println(client.BuildSummary(doc))
}

func runDownload() {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	serverURL := fs.String("server", "", "server URL (overrides config)")
	outDir := fs.String("out", "", "download directory (overrides config)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: shikshasetu download [flags] <document-id>")
		os.Exit(1)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Printf("Invalid document id: %s\n", fs.Arg(0))
		os.Exit(1)
	}

	cfg := clientConfig(*serverURL)
	dir := cfg.Client.DownloadDir
	if *outDir != "" {
		dir = *outDir
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	c := client.NewClient(cfg.Client, nil, logger)
	path, err := c.DownloadSummary(context.Background(), id, dir, buttonProgress{})
	if err != nil {
		fmt.Fprintln(os.Stderr, client.UserMessage(err))
		os.Exit(1)
	}
	fmt.Printf("Summary saved to %s\n", path)
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: shikshasetu seed [flags] <seed-file>")
		os.Exit(1)
	}
	seedPath := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	syncer := catalog.NewSyncer(components.Store, components.KeywordIndex, logger)
	if err := syncer.SyncFile(context.Background(), seedPath); err != nil {
		fmt.Printf("Seed failed: %v\n", err)
		os.Exit(1)
	}
	count, err := components.Store.CountDocuments(context.Background())
	if err == nil {
		fmt.Printf("Catalog seeded with %d document(s)\n", count)
	}
}

// clientConfig builds the client-side config: the config file when present,
// defaults plus environment otherwise.
func clientConfig(serverURL string) *config.Config {
	cfg, _, err := loadConfig(defaultConfigPath)
	if err != nil {
		cfg = config.Default()
	}
	if serverURL != "" {
		cfg.Client.ServerURL = serverURL
	}
	return cfg
}

// Components holds initialized server-side services.
type Components struct {
	Store        storage.Store
	KeywordIndex keyword.Index
	Engine       *search.Engine
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.KeywordIndex != nil {
		_ = c.KeywordIndex.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	boosts := keyword.Boosts{
		Title:    cfg.Search.TitleBoost,
		Keywords: cfg.Search.KeywordsBoost,
		Content:  cfg.Search.ContentBoost,
	}
	keywordIndex, err := keyword.NewBleveIndex(cfg.Storage.BleveIndexPath, boosts)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize keyword index: %w", err)
	}

	engine := search.NewEngine(store, keywordIndex, cfg.Search, logger)
	return &Components{
		Store:        store,
		KeywordIndex: keywordIndex,
		Engine:       engine,
	}, nil
}

func printUsage() {
	fmt.Println(`shikshasetu - Education policy document search

Usage:
  shikshasetu server [flags]            Start the HTTP server
  shikshasetu search [flags] <query>    Search the catalog
  shikshasetu get [flags] <id>          Show a document summary
  shikshasetu download [flags] <id>     Save a document summary to a file
  shikshasetu seed [flags] <file>       Load the catalog from a YAML seed file
  shikshasetu version                   Show version
  shikshasetu help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/shikshasetu/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --server string      Server URL (overrides config and SHIKSHA_SERVER_URL)
  --type string        Filter by document type
  --category string    Filter by category
  --interactive        Prompt for per-result actions (default: true)

Examples:
  shikshasetu server
  shikshasetu seed catalog.yaml
  shikshasetu search education policy
  shikshasetu search --type Policy --category "Higher Education" scholarship
  shikshasetu get 12
  shikshasetu download --out ./downloads 12`)
}
