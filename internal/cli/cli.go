// Package cli implements the treeplot command-line interface.
//
// The commands fetch a tree from a source (the built-in sample, a JSON or
// TOML file, Redis or MongoDB), adapt it into node/edge graph data and hand
// it to a rendering surface:
//
//   - render: write SVG, JSON, DOT, PDF or PNG artifacts
//   - show: serve the plot on a local HTTP server and open the browser
//   - inspect: browse node order, colors and links in the terminal
//   - export: write a source snapshot to a tree file
//   - seed: store a snapshot in Redis or MongoDB
//   - cache: manage the raster artifact cache
//
// Defaults come from $XDG_CONFIG_HOME/treeplot/config.toml and the
// TREEPLOT_* environment variables; flags override both.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeplot/pkg/buildinfo"
	"github.com/matzehuels/treeplot/pkg/cache"
	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/observability"
	"github.com/matzehuels/treeplot/pkg/pipeline"
	"github.com/matzehuels/treeplot/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "treeplot"

	// Cache backends.
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Log levels accepted by New and SetLogLevel.
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

	configPath string
	verbose    bool
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Debug level also installs the
// logging hooks so fetch, adapt, render and cache events are traced.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Treeplot draws positioned trees as node-link plots",
		Long:         `Treeplot turns a tree of positioned nodes into the node order, edge lists, static layout and colors a graph renderer needs, and draws it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/treeplot/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log fetch, adapt, render and cache events")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.seedCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies environment overrides.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			c.config = defaultConfig()
			c.config.applyEnv()
			return nil
		}
		path = filepath.Join(dir, "config.toml")
	}
	cfg, err := readConfig(path, explicit)
	if err != nil {
		return err
	}
	cfg.applyEnv()
	c.config = cfg
	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend := c.config.Cache.Backend
	if noCache {
		backend = cacheBackendNone
	}
	cc, err := c.newCache(ctx, backend)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, backend string) (cache.Cache, error) {
	switch backend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		if c.config.Redis.URL == "" {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "redis cache needs a server URL (set TREEPLOT_REDIS_URL)")
		}
		return cache.DialRedisCache(ctx, c.config.Redis.URL, appName+":")
	case cacheBackendFile, "":
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "unknown cache backend %q (use file, redis or none)", backend)
	}
}

// openSource parses spec and connects the backend it names.
func (c *CLI) openSource(ctx context.Context, spec, format string) (source.Source, error) {
	parsed, err := source.ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	cfg := c.config.sourceConfig()
	cfg.Format = format
	if parsed.Kind != source.KindRedis && parsed.Kind != source.KindMongo {
		return source.Open(ctx, parsed, cfg)
	}
	var src source.Source
	err = withSpinner(ctx, "Connecting to "+parsed.Kind+"...", func() error {
		src, err = source.Open(ctx, parsed, cfg)
		return err
	})
	return src, err
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/treeplot/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns the config directory using XDG standard (~/.config/treeplot/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
