package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hemicycle/pkg/api"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the seating chart HTTP API",
		Long: `Serve the seating chart HTTP API.

Endpoints:
  POST /v1/charts           compute a chart, respond with JSON
  POST /v1/charts/{format}  compute a chart, respond with a json, xlsx or dxf file
  GET  /healthz             liveness and build information

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), newPrinter(cmd.OutOrStdout()), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, p *printer, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := api.New(runner, loggerFromContext(ctx),
		api.WithDefaultScale(c.cfg.Chart.Scale),
		api.WithMaxRows(c.cfg.Chart.MaxRows),
	)
	p.info("Serving on %s", StyleHighlight.Render(addr))
	return srv.ListenAndServe(ctx, addr)
}
