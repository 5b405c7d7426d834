// Package cli implements the jsonscope command-line interface.
//
// This package provides commands for inspecting JSON documents as trees,
// turning them into diagrams, comparing two documents, and managing saved
// documents and the diagram cache. The CLI is built using cobra and logs
// through charmbracelet/log.
//
// # Commands
//
//   - tree, explore: print or browse the GraphNode tree of a document
//   - diagram, render: produce Mermaid/DOT source or SVG/PNG images
//   - diff: structural comparison of two documents
//   - path, fmt: path notation and order-preserving pretty printing
//   - watch, serve: re-run on file changes, or serve the HTTP API
//   - doc, cache, config: manage saved documents, the cache and settings
//
// Inputs are file paths, http(s) URLs, "-" for stdin, or "doc:<id>" for a
// saved document.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// turns on pipeline and cache event logging. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/buildinfo"
	"github.com/matzehuels/jsonscope/pkg/cache"
	"github.com/matzehuels/jsonscope/pkg/config"
	"github.com/matzehuels/jsonscope/pkg/observability"
	"github.com/matzehuels/jsonscope/pkg/pipeline"
	"github.com/matzehuels/jsonscope/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "jsonscope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config

	stdin  io.Reader
	stdout io.Writer
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetIO replaces standard input and output. It is used by tests.
func (c *CLI) SetIO(in io.Reader, out io.Writer) {
	c.stdin = in
	c.stdout = out
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "jsonscope inspects, diagrams and compares JSON documents",
		Long:          `jsonscope turns JSON documents into navigable trees and Mermaid or Graphviz diagrams, and reports structural differences between two documents.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jsonscope/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.treeCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.docCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	r.MaxDepth = c.cfg.Parse.MaxDepth
	r.TTL = c.cfg.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendRedis:
		rc := c.cfg.Redis
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
			Prefix:   rc.Prefix,
		})
	case config.BackendFile:
		dir, err := c.cfg.CacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
	return cache.NewNullCache(), nil
}

// newStore opens the configured document store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.cfg.Store.Backend == config.BackendMongo {
		mc := c.cfg.Mongo
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        mc.URI,
			Database:   mc.Database,
			Collection: mc.Collection,
			Timeout:    mc.Timeout.Duration,
		})
	}
	return store.NewFileStore(c.cfg.Store.Dir)
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.stdout, format, args...)
}
