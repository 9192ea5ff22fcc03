// Package cli implements the diagramkit command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/buildinfo"
	"github.com/diagramkit/diagramkit/pkg/cache"
	"github.com/diagramkit/diagramkit/pkg/config"
	"github.com/diagramkit/diagramkit/pkg/pipeline"
	"github.com/diagramkit/diagramkit/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "diagramkit"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the engine config file, settable via --config.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "diagramkit",
		Short:        "Diagramkit turns abstract diagram descriptions into positioned layouts",
		Long:         `Diagramkit is a layout engine CLI: it takes an abstract diagram description (blocks, connectors, layers) and produces a render-ready layout with every element positioned, sized, colored, and validated against quality constraints.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "engine config file (TOML)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.fixCommand())
	root.AddCommand(c.archetypesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the engine configuration, falling back to defaults when no
// file is given or present.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped
// by canvas geometry: the canvas dimensions shape every position but live
// in the engine config, not the input hash, so a config change must not
// serve layouts computed for a different canvas.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	registry := newRegistry(cfg, c.Logger)
	keyer := cache.NewScopedKeyer(nil, canvasScope(cfg))
	return pipeline.NewRunner(registry, cfg, cch, keyer, c.Logger), nil
}

// canvasScope is the cache key prefix for a canvas geometry.
func canvasScope(cfg config.Config) string {
	return fmt.Sprintf("c%gx%g:", cfg.Canvas.Width, cfg.Canvas.Height)
}

// newRegistry creates the archetype registry, backed by the configured rules
// directory when one is set.
func newRegistry(cfg config.Config, logger *log.Logger) *archetype.Registry {
	opts := []archetype.Option{archetype.WithLogger(logger)}
	if dir := rulesDir(cfg); dir != "" {
		opts = append(opts, archetype.WithDir(dir))
	}
	return archetype.NewRegistry(opts...)
}

func newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "redis" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newStore opens the layout archive when one is configured, otherwise a
// process-local in-memory store.
func newStore(ctx context.Context, cfg config.Store) (store.Store, error) {
	if cfg.URI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:        cfg.URI,
		Database:   cfg.Database,
		Collection: cfg.Collection,
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/diagramkit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// rulesDir returns the configured archetype rules directory, or the XDG data
// default (~/.local/share/diagramkit/rules) when unset.
func rulesDir(cfg config.Config) string {
	if cfg.Rules.Dir != "" {
		return cfg.Rules.Dir
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "rules")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appName, "rules")
}
