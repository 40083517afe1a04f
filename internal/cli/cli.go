package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slideshow/internal/config"
	"github.com/matzehuels/slideshow/pkg/buildinfo"
	"github.com/matzehuels/slideshow/pkg/cache"
	"github.com/matzehuels/slideshow/pkg/pipeline"
	"github.com/matzehuels/slideshow/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "slideshow"
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

	// Config is loaded before any subcommand runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Slideshow builds high-scoring slideshows from tagged photos",
		Long:         `Slideshow orders a collection of tagged photos into a slideshow with a greedy nearest-neighbour search, scores it, and keeps a history of solved runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/slideshow/config.toml)")

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache opens the configured result cache. A file cache that cannot be
// created falls back to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache || c.Config.Cache.Backend == config.CacheNone {
		return cache.NewNullCache(), nil, nil
	}

	if c.Config.Cache.Backend == config.CacheRedis {
		rc := c.Config.Cache.Redis
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open redis cache: %w", err)
		}
		var keyer cache.Keyer
		if rc.Namespace != "" {
			keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), rc.Namespace)
		}
		return redisCache, keyer, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("result cache disabled", "err", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// newStore opens the configured run store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	sc := c.Config.Store
	if sc.Backend == config.StoreMongo {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        sc.Mongo.URI,
			Database:   sc.Mongo.Database,
			Collection: sc.Mongo.Collection,
		})
	}
	return store.NewFileStore(sc.Dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/slideshow/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the directory the dataset picker lists, defaulting to the
// working directory.
func (c *CLI) dataDir() string {
	if c.Config.DataDir != "" {
		return c.Config.DataDir
	}
	return "."
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the config. Flags override the
// returned values.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Seed:        c.Config.Seed,
		Workers:     c.Config.Workers,
		ReportEvery: c.Config.ReportEvery,
		Logger:      c.Logger,
	}
}
