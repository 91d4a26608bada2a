package main

import (
	"bookforge/internal/cache"
	"bookforge/internal/db"
	"bookforge/internal/envstruct"
	"bookforge/internal/llm"
	"bookforge/internal/logging"
	"bookforge/internal/pprofserver"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type config struct {
	GeminiAPIKey    string `env:"GEMINI_API_KEY" envDefault:""`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY" envDefault:""`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY" envDefault:""`
	CacheURL        string `env:"BOOKFORGE_CACHE_URL" envDefault:"./bookforge.sqlite"`
	PprofPort       string `env:"BOOKFORGE_PPROF_PORT" envDefault:""`
	LogLevel        string `env:"BOOKFORGE_LOG_LEVEL" envDefault:"info"`
}

// application bundles the shared dependencies every command needs.
type application struct {
	logger   *slog.Logger
	registry *llm.Registry
	store    *cache.Store
	cfg      config
}

func newApplication() (*application, error) {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	var cfg config
	if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	handler := logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{ //nolint:exhaustruct // this is better for readability
		Level: level,
	}))
	logger := slog.New(handler)

	if cfg.PprofPort != "" {
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	registry := llm.NewRegistry(llm.Credentials{
		GoogleKey:    cfg.GeminiAPIKey,
		AnthropicKey: cfg.AnthropicAPIKey,
		OpenAIKey:    cfg.OpenAIAPIKey,
	}, logger)

	var store *cache.Store
	if cfg.CacheURL != "" {
		database, err := db.NewDatabase(cfg.CacheURL)
		if err != nil {
			// Generation works without a cache, it is just slower on reruns.
			logger.Warn("research cache unavailable", slog.String("url", cfg.CacheURL), slog.Any("error", err))
		} else {
			store = cache.NewStore(database, logger)
		}
	}

	return &application{
		logger:   logger,
		registry: registry,
		store:    store,
		cfg:      cfg,
	}, nil
}

var generateGroup = &cobra.Group{
	ID:    "generate",
	Title: "Generation pipeline",
}

var mediaGroup = &cobra.Group{
	ID:    "media",
	Title: "Media operations",
}

func main() {
	app, err := newApplication()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{ //nolint:exhaustruct // this is better for readability
		Use:  "bookforge",
		Long: `Research-driven satirical book generation: forensic research agents, a two-stage author pipeline, podcast episodes, and cover art.`,
	}
	rootCmd.AddGroup(generateGroup)
	rootCmd.AddCommand(newResearchCmd(app))
	rootCmd.AddCommand(newBookCmd(app))
	rootCmd.AddCommand(newPodcastCmd(app))
	rootCmd.AddGroup(mediaGroup)
	rootCmd.AddCommand(newImageCmd(app))
	rootCmd.AddCommand(newImportCmd(app))

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
