package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfview/pkg/buildinfo"
	"github.com/matzehuels/shelfview/pkg/cache"
	"github.com/matzehuels/shelfview/pkg/observability"
	"github.com/matzehuels/shelfview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "shelfview"

	// envRedisAddr selects the redis cache when --redis-addr is not given.
	envRedisAddr = "SHELFVIEW_REDIS_ADDR"

	redisConnectTimeout = 5 * time.Second
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

	redisAddr string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
// At debug level library events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.SetAll(observability.NewLogHooks(c.Logger))
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Shelfview lays out item collections and animates between layouts",
		Long: `Shelfview computes placements for a collection of variably sized items in
three arrangements (shelf, grid and page) and interpolates between any two
of them as a pinch gesture would.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.redisAddr, "redis-addr", os.Getenv(envRedisAddr),
		"cache snapshots in redis at this address instead of on disk (env "+envRedisAddr+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.transitionCommand())
	root.AddCommand(c.scrubCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		ctx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
		defer cancel()
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", c.redisAddr, err)
		}
		c.Logger.Debug("using redis cache", "addr", c.redisAddr)
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/shelfview/).
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

// outputBase returns the path prefix for files derived from input, honoring
// an explicit output prefix.
func outputBase(input, output string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// writeArtifacts writes one file per format next to base and returns their
// paths in format order.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	var paths []string
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := base + "." + f
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
