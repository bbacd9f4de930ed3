package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hemicycle/pkg/buildinfo"
	"github.com/matzehuels/hemicycle/pkg/cache"
	"github.com/matzehuels/hemicycle/pkg/config"
	"github.com/matzehuels/hemicycle/pkg/observability"
	"github.com/matzehuels/hemicycle/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "hemicycle"

	// defaultEnvFile is the dotenv file read before environment overrides.
	defaultEnvFile = ".env"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Process exit codes returned by Execute.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130 // shell convention for SIGINT
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	envFile    string
	verbose    bool
	cfg        config.Config
	loaded     bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		envFile: defaultEnvFile,
		cfg:     config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Hemicycle lays out parliament seating charts",
		Long: `Hemicycle computes semicircular parliament seating charts: it plans concentric
rows of seats, places every seat on its row, and hands each party a contiguous
wedge of the hemicycle from left to right.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			c.registerHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/hemicycle/config.toml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", c.envFile, "dotenv file with HEMICYCLE_* overrides")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs the command line in args and returns the process exit code.
// Errors are printed to the command's error stream; an interrupted run exits
// with 130 without printing.
func (c *CLI) Execute(ctx context.Context, args []string) int {
	root := c.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		fmt.Fprintln(root.ErrOrStderr(), styleFail.Render(iconError), err)
		return exitFailure
	}
}

// loadConfig resolves the configuration once per process.
func (c *CLI) loadConfig() error {
	if c.loaded {
		return nil
	}
	cfg, err := config.Load(c.configPath, c.envFile)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.loaded = true
	c.Logger.Debug("loaded config", "backend", cfg.Cache.Backend, "scale", cfg.Chart.Scale)
	return nil
}

// registerHooks routes pipeline, cache and server events to the CLI logger.
func (c *CLI) registerHooks() {
	observability.Register(observability.NewLogHooks(c.Logger))
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, c.newKeyer(), c.Logger)
	runner.TTL = c.cfg.Cache.TTL.Duration
	return runner, nil
}

// newKeyer returns the cache keyer, scoped by cache.key_prefix when set.
func (c *CLI) newKeyer() cache.Keyer {
	if c.cfg.Cache.KeyPrefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.cfg.Cache.KeyPrefix)
}

// newCache opens the configured cache backend. An unreachable Redis server
// degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
		})
		if errors.Is(err, cache.ErrUnavailable) {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", c.cfg.Cache.RedisAddr, "err", err)
			return cache.NewNullCache(), nil
		}
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		if c.cfg.Cache.Dir == "" {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(c.cfg.Cache.Dir)
	}
}
