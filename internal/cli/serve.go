package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfview/internal/server"
)

// serveCommand creates the serve command that runs the HTTP session API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfg     server.Config
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and interactive transitions over HTTP",
		Long: `Serve layouts and interactive transitions over HTTP.

Clients create a session from a scene with POST /v1/sessions, then drive
transitions with /transition, /progress, /release, /finish and /cancel.
POST /v1/render runs the cached layout pipeline on an inline scene.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printInfo("Listening on %s", cfg.Addr)
			printDetail("Sessions expire after %s idle", cfg.SessionTTL)
			return server.New(cfg, runner, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&cfg.Addr, "addr", "a", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&cfg.SessionTTL, "session-ttl", server.DefaultSessionTTL, "idle lifetime of a session")
	cmd.Flags().DurationVar(&cfg.CleanupInterval, "cleanup-interval", server.DefaultCleanupInterval, "how often expired sessions are dropped")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
