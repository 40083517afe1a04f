package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slideshow/internal/server"
	"github.com/matzehuels/slideshow/pkg/observability"
	"github.com/matzehuels/slideshow/pkg/store"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solve API over HTTP",
		Long: `Serve the solve API over HTTP.

Routes:
  GET    /healthz
  POST   /v1/solve?seed=N&dataset=NAME&drop_unpaired=true   (body: input text)
  GET    /v1/runs?limit=N
  GET    /v1/runs/{id}
  DELETE /v1/runs/{id}

The result cache and the run store come from the config file, so several
servers can share one Redis cache and one MongoDB history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache, noStore)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then localhost:8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not save runs")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache, noStore bool) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var st store.Store
	if !noStore {
		st, err = c.newStore(ctx)
		if err != nil {
			return fmt.Errorf("open run store: %w", err)
		}
		defer st.Close()
	}

	srv := server.New(runner, st, c.Logger, server.Options{
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		Workers:      c.Config.Workers,
	})

	printInfo("Listening on %s", StyleHighlight.Render("http://"+addr))
	return srv.Serve(ctx, addr)
}
